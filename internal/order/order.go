package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"salepoint/backend/internal/domain"
)

// Order is the in-progress, uncommitted cart. Lines keep insertion order
// and hold at most one entry per product id; adding the same product again
// merges into the existing line. The service owns the Order and serializes
// access, so there is no locking here.
type Order struct {
	lines []domain.OrderLine
}

func New() *Order {
	return &Order{}
}

// Add puts qty units of the product into the order, clamped against the
// product's current stock. The clamp is lenient: when the request exceeds
// the available headroom only the headroom is added and the result reports
// the shortfall. With zero headroom the order is untouched and the full
// request is reported as shortfall.
func (o *Order) Add(product domain.Product, qty int) (domain.AddItemResult, error) {
	if qty < 1 {
		return domain.AddItemResult{}, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}

	result := domain.AddItemResult{Requested: qty}

	for i := range o.lines {
		if o.lines[i].ProductID != product.ID {
			continue
		}
		headroom := product.Stock - o.lines[i].Quantity
		if headroom < 0 {
			headroom = 0
		}
		added := qty
		if added > headroom {
			added = headroom
		}
		o.lines[i].Quantity += added
		result.Added = added
		result.Shortfall = qty - added
		result.Line = o.lines[i]
		return result, nil
	}

	added := qty
	if added > product.Stock {
		added = product.Stock
	}
	result.Added = added
	result.Shortfall = qty - added
	if added > 0 {
		line := domain.OrderLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  added,
		}
		o.lines = append(o.lines, line)
		result.Line = line
	}
	return result, nil
}

// Remove deletes the line for the given product id. Removing an absent id
// is a no-op, not an error.
func (o *Order) Remove(productID string) bool {
	for i := range o.lines {
		if o.lines[i].ProductID == productID {
			o.lines = append(o.lines[:i], o.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Lines returns a copy of the current order lines in insertion order.
func (o *Order) Lines() []domain.OrderLine {
	lines := make([]domain.OrderLine, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Total sums price times quantity across all lines, rounded to 2 decimals.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.lines {
		total = total.Add(line.Subtotal())
	}
	return total.Round(2)
}

func (o *Order) IsEmpty() bool {
	return len(o.lines) == 0
}

// Clear empties the order. Used after a sale commits.
func (o *Order) Clear() {
	o.lines = nil
}

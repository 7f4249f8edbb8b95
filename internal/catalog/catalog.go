package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"salepoint/backend/internal/domain"
)

// Catalog is the authoritative store of products and their stock, price and
// cost. It is owned by the service, which serializes all access; Catalog
// itself carries no locking.
type Catalog struct {
	products map[string]domain.Product
	ids      []string
	nextID   int
}

func New() *Catalog {
	return &Catalog{
		products: make(map[string]domain.Product),
		nextID:   1,
	}
}

// NewSeeded builds a catalog pre-filled with demo products for dev mode.
func NewSeeded() *Catalog {
	c := New()
	seed := []struct {
		name  string
		price string
		cost  string
		stock int
	}{
		{"Americano", "3.50", "0.80", 40},
		{"Caffe Latte", "4.25", "1.10", 40},
		{"Butter Croissant", "2.95", "1.20", 24},
		{"Blueberry Muffin", "3.15", "1.30", 18},
		{"Orange Juice", "3.80", "1.60", 30},
		{"Club Sandwich", "6.90", "3.10", 12},
	}
	for _, p := range seed {
		// Seed values are hardcoded literals, so Create cannot fail here.
		_, _ = c.Create(p.name, decimal.RequireFromString(p.price), decimal.RequireFromString(p.cost), p.stock)
	}
	return c
}

// Create validates the inputs, allocates a fresh unique id and stores the
// product. Ids are monotonically assigned and never reused.
func (c *Catalog) Create(name string, price, cost decimal.Decimal, stock int) (domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Product{}, fmt.Errorf("%w: product name required", domain.ErrInvalidInput)
	}
	if price.IsNegative() || cost.IsNegative() {
		return domain.Product{}, fmt.Errorf("%w: price and cost must be non-negative", domain.ErrInvalidInput)
	}
	if stock < 0 {
		return domain.Product{}, fmt.Errorf("%w: stock must be a non-negative integer", domain.ErrInvalidInput)
	}

	product := domain.Product{
		ID:    fmt.Sprintf("prod-%d", c.nextID),
		Name:  name,
		Price: price,
		Cost:  cost,
		Stock: stock,
	}
	c.nextID++
	c.products[product.ID] = product
	c.ids = append(c.ids, product.ID)
	return product, nil
}

func (c *Catalog) Get(id string) (domain.Product, error) {
	product, exists := c.products[id]
	if !exists {
		return domain.Product{}, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	return product, nil
}

// List returns all products in creation order.
func (c *Catalog) List() []domain.Product {
	products := make([]domain.Product, 0, len(c.ids))
	for _, id := range c.ids {
		products = append(products, c.products[id])
	}
	return products
}

// SetStock replaces the product's stock level. It does not clamp against
// any open order; the caller reconciles at sale commit.
func (c *Catalog) SetStock(id string, stock int) (domain.Product, error) {
	product, exists := c.products[id]
	if !exists {
		return domain.Product{}, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	if stock < 0 {
		return domain.Product{}, fmt.Errorf("%w: stock must be a non-negative integer", domain.ErrInvalidInput)
	}
	product.Stock = stock
	c.products[id] = product
	return product, nil
}

// DecrementStock lowers the product's stock by qty, flooring at zero. Used
// only by sale commit, where quantities were validated when the order was
// built; an unknown id reports ok=false instead of failing.
func (c *Catalog) DecrementStock(id string, qty int) (domain.Product, bool) {
	product, exists := c.products[id]
	if !exists {
		return domain.Product{}, false
	}
	product.Stock -= qty
	if product.Stock < 0 {
		product.Stock = 0
	}
	c.products[id] = product
	return product, true
}

// StockAlerts collects the names of out-of-stock and low-stock products in
// creation order.
func (c *Catalog) StockAlerts() domain.StockAlerts {
	alerts := domain.StockAlerts{
		OutOfStock: []string{},
		LowStock:   []string{},
	}
	for _, id := range c.ids {
		product := c.products[id]
		switch product.StockStatus() {
		case domain.StockStatusOut:
			alerts.OutOfStock = append(alerts.OutOfStock, product.Name)
		case domain.StockStatusLow:
			alerts.LowStock = append(alerts.LowStock, product.Name)
		}
	}
	return alerts
}

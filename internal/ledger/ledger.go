package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"salepoint/backend/internal/domain"
)

// Ledger is the append-only history of completed sales. Sales are stored in
// commit order and never mutated or removed. The service owns the Ledger
// and serializes access.
type Ledger struct {
	sales []domain.Sale
}

func New() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Append(sale domain.Sale) {
	l.sales = append(l.sales, sale)
}

// All returns a copy of the recorded sales in commit order. The contained
// Sale values are immutable by convention.
func (l *Ledger) All() []domain.Sale {
	sales := make([]domain.Sale, len(l.sales))
	copy(sales, l.sales)
	return sales
}

func (l *Ledger) Len() int {
	return len(l.sales)
}

// WriteCSV serializes the ledger with one row per sale: id, RFC 3339
// timestamp, total, aggregate captured cost, and an item summary joined
// with "; ". Fields are quoted per standard CSV escaping.
func (l *Ledger) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Sale ID", "Timestamp", "Total", "Cost", "Items"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, sale := range l.sales {
		row := []string{
			sale.ID,
			sale.Timestamp.UTC().Format(time.RFC3339),
			sale.Total.StringFixed(2),
			sale.CostTotal().StringFixed(2),
			ItemsSummary(sale, "; "),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ItemsSummary renders a sale's lines as "Name (xQty)" joined by sep.
func ItemsSummary(sale domain.Sale, sep string) string {
	parts := make([]string, 0, len(sale.Lines))
	for _, line := range sale.Lines {
		parts = append(parts, fmt.Sprintf("%s (x%d)", line.Name, line.Quantity))
	}
	return strings.Join(parts, sep)
}

package report

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"salepoint/backend/internal/domain"
)

type stubResolver struct {
	products map[string]domain.Product
}

func (r stubResolver) Get(id string) (domain.Product, error) {
	product, exists := r.products[id]
	if !exists {
		return domain.Product{}, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	return product, nil
}

func line(id, name, price, cost string, qty int) domain.SaleLine {
	return domain.SaleLine{
		ProductID: id,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Cost:      decimal.RequireFromString(cost),
		Quantity:  qty,
	}
}

func sale(id string, ts time.Time, lines ...domain.SaleLine) domain.Sale {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return domain.Sale{ID: id, Lines: lines, Total: total.Round(2), Timestamp: ts}
}

func TestBuildEmptyLedger(t *testing.T) {
	rep := Build(nil, nil)

	if rep.KPIs.TotalSalesCount != 0 {
		t.Fatalf("expected zero sales, got %d", rep.KPIs.TotalSalesCount)
	}
	if !rep.KPIs.AverageSale.IsZero() {
		t.Fatalf("expected average sale 0 on empty ledger, got %s", rep.KPIs.AverageSale)
	}
	if len(rep.PerProduct) != 0 || len(rep.RevenueByDay) != 0 || len(rep.TopProducts) != 0 {
		t.Fatalf("expected empty aggregates, got %+v", rep)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		sale("sale-1", ts, line("p1", "Americano", "3.50", "0.80", 2)),
		sale("sale-2", ts.Add(time.Hour), line("p2", "Latte", "4.25", "1.10", 1)),
	}

	first := Build(sales, nil)
	second := Build(sales, nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical reports for identical input")
	}
}

func TestPerProductAggregation(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		sale("sale-1", ts, line("p1", "Americano", "3.50", "0.80", 2)),
		sale("sale-2", ts, line("p1", "Americano", "3.50", "0.80", 3), line("p2", "Latte", "4.25", "1.10", 1)),
	}

	rep := Build(sales, nil)
	if len(rep.PerProduct) != 2 {
		t.Fatalf("expected two aggregates, got %d", len(rep.PerProduct))
	}

	first := rep.PerProduct[0]
	if first.ProductID != "p1" || first.TotalQuantity != 5 {
		t.Fatalf("unexpected first aggregate: %+v", first)
	}
	if got := first.TotalRevenue.StringFixed(2); got != "17.50" {
		t.Fatalf("expected revenue 17.50, got %s", got)
	}
}

func TestNameResolutionPrefersLiveCatalog(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		sale("sale-1", ts,
			line("p1", "Old Name", "3.50", "0.80", 1),
			line("p2", "Gone Product", "2.00", "0.50", 1)),
	}
	resolver := stubResolver{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "New Name"},
	}}

	rep := Build(sales, resolver)
	if rep.PerProduct[0].Name != "New Name" {
		t.Fatalf("expected live catalog name, got %q", rep.PerProduct[0].Name)
	}
	if rep.PerProduct[1].Name != "Gone Product" {
		t.Fatalf("expected sale-recorded fallback name, got %q", rep.PerProduct[1].Name)
	}
}

func TestRevenueByDayAscending(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 12, 0, 0, 0, time.UTC)
	}
	sales := []domain.Sale{
		sale("sale-1", day(16), line("p1", "Americano", "10.00", "1.00", 1)),
		sale("sale-2", day(14), line("p1", "Americano", "5.00", "1.00", 1)),
		sale("sale-3", day(16), line("p1", "Americano", "2.50", "1.00", 2)),
	}

	rep := Build(sales, nil)
	if len(rep.RevenueByDay) != 2 {
		t.Fatalf("expected two days, got %d", len(rep.RevenueByDay))
	}
	if rep.RevenueByDay[0].Date != "2026-03-14" || rep.RevenueByDay[1].Date != "2026-03-16" {
		t.Fatalf("expected ascending dates, got %+v", rep.RevenueByDay)
	}
	if got := rep.RevenueByDay[1].Revenue.StringFixed(2); got != "15.00" {
		t.Fatalf("expected 15.00 on the busy day, got %s", got)
	}
}

func TestKPIs(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		sale("sale-1", ts, line("p1", "Americano", "10.00", "4.00", 1)),
		sale("sale-2", ts, line("p1", "Americano", "5.00", "4.00", 1)),
	}

	rep := Build(sales, nil)
	if rep.KPIs.TotalSalesCount != 2 {
		t.Fatalf("expected 2 sales, got %d", rep.KPIs.TotalSalesCount)
	}
	if got := rep.KPIs.TotalRevenue.StringFixed(2); got != "15.00" {
		t.Fatalf("expected revenue 15.00, got %s", got)
	}
	if got := rep.KPIs.AverageSale.StringFixed(2); got != "7.50" {
		t.Fatalf("expected average 7.50, got %s", got)
	}
}

func TestTopProductsStableTies(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		sale("sale-1", ts,
			line("p1", "A", "1.00", "0.10", 5),
			line("p2", "B", "1.00", "0.10", 3),
			line("p3", "C", "1.00", "0.10", 3),
			line("p4", "D", "1.00", "0.10", 1)),
	}

	rep := Build(sales, nil)
	got := make([]string, 0, len(rep.TopProducts))
	for _, p := range rep.TopProducts {
		got = append(got, p.ProductID)
	}
	want := []string{"p1", "p2", "p3", "p4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v (ties keep encounter order), got %v", want, got)
	}
}

func TestTopProductsTruncates(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	lines := make([]domain.SaleLine, 0, TopProductsLimit+2)
	for i := 0; i < TopProductsLimit+2; i++ {
		lines = append(lines, line(fmt.Sprintf("p%d", i), fmt.Sprintf("P%d", i), "1.00", "0.10", i+1))
	}
	rep := Build([]domain.Sale{sale("sale-1", ts, lines...)}, nil)

	if len(rep.TopProducts) != TopProductsLimit {
		t.Fatalf("expected top list capped at %d, got %d", TopProductsLimit, len(rep.TopProducts))
	}
	if rep.TopProducts[0].TotalQuantity != TopProductsLimit+2 {
		t.Fatalf("expected best seller first, got %+v", rep.TopProducts[0])
	}
}

func TestGrossProfitUsesCapturedCost(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		sale("sale-1", ts, line("p1", "Americano", "10.00", "4.00", 2)),
	}

	// The resolver reports a completely different current cost; profit must
	// come from the cost captured in the sale line.
	resolver := stubResolver{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Americano", Cost: decimal.RequireFromString("9.99")},
	}}

	rep := Build(sales, resolver)
	if got := rep.TotalCost.StringFixed(2); got != "8.00" {
		t.Fatalf("expected captured cost total 8.00, got %s", got)
	}
	if got := rep.GrossProfit.StringFixed(2); got != "12.00" {
		t.Fatalf("expected gross profit 12.00, got %s", got)
	}
}

func TestDaySummary(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		sale("sale-1", ts,
			line("p1", "Americano", "3.50", "0.80", 2),
			line("p2", "Latte", "4.25", "1.10", 1)),
	}

	summary := DaySummary(sales)
	if summary.SalesCount != 1 || len(summary.Sales) != 1 {
		t.Fatalf("expected one sale in summary, got %+v", summary)
	}
	if got := summary.TotalRevenue.StringFixed(2); got != "11.25" {
		t.Fatalf("expected revenue 11.25, got %s", got)
	}
	if got := summary.TotalCost.StringFixed(2); got != "2.70" {
		t.Fatalf("expected cost 2.70, got %s", got)
	}
	if got := summary.GrossProfit.StringFixed(2); got != "8.55" {
		t.Fatalf("expected profit 8.55, got %s", got)
	}
	if summary.Sales[0].ItemsSummary != "Americano (x2), Latte (x1)" {
		t.Fatalf("unexpected items summary: %q", summary.Sales[0].ItemsSummary)
	}
}

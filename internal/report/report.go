package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"salepoint/backend/internal/domain"
)

// TopProductsLimit caps the top-sellers list.
const TopProductsLimit = 5

// ProductResolver resolves a product id against the live catalog, used to
// prefer current product names over the ones recorded at sale time.
type ProductResolver interface {
	Get(id string) (domain.Product, error)
}

// Build derives the full aggregate bundle from the given sales. It is a
// pure function: no side effects, identical output for identical input.
// Per-product aggregates keep first-encounter order across the ledger;
// the revenue-by-day series is sorted by date ascending.
func Build(sales []domain.Sale, resolver ProductResolver) domain.Report {
	type acc struct {
		name     string
		quantity int
		revenue  decimal.Decimal
	}
	perProduct := make(map[string]*acc)
	encounterOrder := make([]string, 0, 16)
	revenueByDay := make(map[string]decimal.Decimal)

	totalRevenue := decimal.Zero
	totalCost := decimal.Zero

	for _, sale := range sales {
		totalRevenue = totalRevenue.Add(sale.Total)
		totalCost = totalCost.Add(sale.CostTotal())

		day := sale.Timestamp.UTC().Format("2006-01-02")
		revenueByDay[day] = revenueByDay[day].Add(sale.Total)

		for _, line := range sale.Lines {
			entry, seen := perProduct[line.ProductID]
			if !seen {
				name := line.Name
				if resolver != nil {
					if product, err := resolver.Get(line.ProductID); err == nil {
						name = product.Name
					}
				}
				entry = &acc{name: name}
				perProduct[line.ProductID] = entry
				encounterOrder = append(encounterOrder, line.ProductID)
			}
			entry.quantity += line.Quantity
			entry.revenue = entry.revenue.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
	}

	aggregates := make([]domain.ProductAggregate, 0, len(encounterOrder))
	for _, id := range encounterOrder {
		entry := perProduct[id]
		aggregates = append(aggregates, domain.ProductAggregate{
			ProductID:     id,
			Name:          entry.name,
			TotalQuantity: entry.quantity,
			TotalRevenue:  entry.revenue.Round(2),
		})
	}

	days := make([]string, 0, len(revenueByDay))
	for day := range revenueByDay {
		days = append(days, day)
	}
	sort.Strings(days)
	series := make([]domain.DailyRevenue, 0, len(days))
	for _, day := range days {
		series = append(series, domain.DailyRevenue{
			Date:    day,
			Revenue: revenueByDay[day].Round(2),
		})
	}

	kpis := domain.ReportKPIs{
		TotalSalesCount: len(sales),
		TotalRevenue:    totalRevenue.Round(2),
		AverageSale:     decimal.Zero,
	}
	if len(sales) > 0 {
		kpis.AverageSale = totalRevenue.Div(decimal.NewFromInt(int64(len(sales)))).Round(2)
	}

	return domain.Report{
		PerProduct:   aggregates,
		RevenueByDay: series,
		KPIs:         kpis,
		TopProducts:  topProducts(aggregates, TopProductsLimit),
		TotalCost:    totalCost.Round(2),
		GrossProfit:  totalRevenue.Sub(totalCost).Round(2),
	}
}

// topProducts sorts aggregates by quantity descending, keeping encounter
// order for ties, and truncates to n.
func topProducts(aggregates []domain.ProductAggregate, n int) []domain.ProductAggregate {
	top := make([]domain.ProductAggregate, len(aggregates))
	copy(top, aggregates)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalQuantity > top[j].TotalQuantity
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

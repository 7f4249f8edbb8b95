package report

import (
	"github.com/shopspring/decimal"

	"salepoint/backend/internal/domain"
	"salepoint/backend/internal/ledger"
)

// DaySummary builds the end-of-day receipt from the given sales: total
// revenue, total cost of goods sold, gross profit, and one summary line per
// sale. Like Build, it is pure and safe to call repeatedly.
func DaySummary(sales []domain.Sale) domain.DaySummary {
	summary := domain.DaySummary{
		SalesCount: len(sales),
		Sales:      make([]domain.DaySummaryLine, 0, len(sales)),
	}

	totalRevenue := decimal.Zero
	totalCost := decimal.Zero
	for _, sale := range sales {
		saleCost := sale.CostTotal()
		totalRevenue = totalRevenue.Add(sale.Total)
		totalCost = totalCost.Add(saleCost)

		summary.Sales = append(summary.Sales, domain.DaySummaryLine{
			SaleID:       sale.ID,
			Total:        sale.Total,
			Cost:         saleCost.Round(2),
			Timestamp:    sale.Timestamp,
			ItemsSummary: ledger.ItemsSummary(sale, ", "),
		})
	}

	summary.TotalRevenue = totalRevenue.Round(2)
	summary.TotalCost = totalCost.Round(2)
	summary.GrossProfit = totalRevenue.Sub(totalCost).Round(2)
	return summary
}

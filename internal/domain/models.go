package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level at or below which a product is
// flagged as low stock. Zero stock is reported as out of stock instead.
const LowStockThreshold = 5

const (
	StockStatusNormal = "normal"
	StockStatusLow    = "low-stock"
	StockStatusOut    = "out-of-stock"
)

// StockStatusFor classifies a stock level for display purposes.
func StockStatusFor(stock int) string {
	switch {
	case stock <= 0:
		return StockStatusOut
	case stock <= LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusNormal
	}
}

// Product is a catalog item. The catalog owns every Product; stock changes
// only through catalog operations (create, set stock, decrement on sale).
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Cost  decimal.Decimal `json:"cost"`
	Stock int             `json:"stock"`
}

// StockStatus reports the display classification of the product's stock.
func (p Product) StockStatus() string {
	return StockStatusFor(p.Stock)
}

type ProductCreateRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Cost  decimal.Decimal `json:"cost"`
	Stock int             `json:"stock"`
}

type SetStockRequest struct {
	Stock int `json:"stock"`
}

// OrderLine is one entry in the in-progress order. Name and price are
// snapshots taken when the line was added; ProductID is a weak reference
// that must resolve in the catalog for the line to be valid.
type OrderLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is price multiplied by quantity, unrounded.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// AddItemResult describes what an add-to-order call actually did. Shortfall
// is the quantity that could not be added because of insufficient stock; a
// non-zero shortfall is informational, never an error.
type AddItemResult struct {
	Line      OrderLine `json:"line"`
	Requested int       `json:"requested"`
	Added     int       `json:"added"`
	Shortfall int       `json:"shortfall"`
}

// SaleLine snapshots one order line at commit time, including the product's
// catalog cost at that moment. Later cost edits never touch it.
type SaleLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	Quantity  int             `json:"quantity"`
}

// Sale is one committed transaction. Immutable once created; the ledger
// appends sales and never mutates or removes them.
type Sale struct {
	ID        string          `json:"id"`
	Lines     []SaleLine      `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	Timestamp time.Time       `json:"timestamp"`
}

// CostTotal sums captured cost times quantity across the sale's lines.
func (s Sale) CostTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.Lines {
		total = total.Add(line.Cost.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// ProductAggregate sums quantity and revenue for one product across the
// whole ledger. Name comes from the live catalog when the id still
// resolves, otherwise from the name recorded at sale time.
type ProductAggregate struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// DailyRevenue is one point of the revenue-by-day series. Date is a
// YYYY-MM-DD key in UTC, which sorts lexicographically by calendar day.
type DailyRevenue struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ReportKPIs struct {
	TotalSalesCount int             `json:"total_sales_count"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	AverageSale     decimal.Decimal `json:"average_sale"`
}

// Report is the aggregate bundle the reporting engine derives from the
// ledger. It is a pure value; building it twice over the same ledger yields
// identical output.
type Report struct {
	PerProduct   []ProductAggregate `json:"per_product"`
	RevenueByDay []DailyRevenue     `json:"revenue_by_day"`
	KPIs         ReportKPIs         `json:"kpis"`
	TopProducts  []ProductAggregate `json:"top_products"`
	TotalCost    decimal.Decimal    `json:"total_cost"`
	GrossProfit  decimal.Decimal    `json:"gross_profit"`
}

// StockAlerts lists product names needing attention, grouped by severity.
type StockAlerts struct {
	OutOfStock []string `json:"out_of_stock"`
	LowStock   []string `json:"low_stock"`
}

// DaySummaryLine is one sale in the end-of-day summary.
type DaySummaryLine struct {
	SaleID       string          `json:"sale_id"`
	Total        decimal.Decimal `json:"total"`
	Cost         decimal.Decimal `json:"cost"`
	Timestamp    time.Time       `json:"timestamp"`
	ItemsSummary string          `json:"items_summary"`
}

// DaySummary is the end-of-day receipt: overall revenue, cost of goods
// sold, gross profit, and one line per recorded sale.
type DaySummary struct {
	SalesCount   int              `json:"sales_count"`
	TotalRevenue decimal.Decimal  `json:"total_revenue"`
	TotalCost    decimal.Decimal  `json:"total_cost"`
	GrossProfit  decimal.Decimal  `json:"gross_profit"`
	Sales        []DaySummaryLine `json:"sales"`
}

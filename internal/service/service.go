package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"salepoint/backend/internal/cache"
	"salepoint/backend/internal/catalog"
	"salepoint/backend/internal/domain"
	"salepoint/backend/internal/ledger"
	"salepoint/backend/internal/order"
	"salepoint/backend/internal/report"
	"salepoint/backend/internal/xid"
)

// Listener receives change notifications after core mutations, carrying
// plain data for a view layer to render. Listeners are invoked outside the
// service lock and synchronously, in subscription order.
type Listener interface {
	CatalogChanged(product domain.Product)
	OrderChanged(lines []domain.OrderLine, total decimal.Decimal)
	SaleCompleted(sale domain.Sale)
}

// Service owns the catalog, the in-progress order and the sales ledger, and
// coordinates every state transition between them. A single mutex makes
// each operation one atomic step; the owned components carry no locking of
// their own.
type Service struct {
	mu         sync.Mutex
	catalog    *catalog.Catalog
	order      *order.Order
	ledger     *ledger.Ledger
	reports    cache.ReportCache
	reportTTL  time.Duration
	storeLabel string
	listeners  []Listener
}

func New(cat *catalog.Catalog, reports cache.ReportCache, reportTTL time.Duration, storeLabel string) *Service {
	if cat == nil {
		cat = catalog.New()
	}
	if reports == nil {
		reports = cache.NoopReportCache{}
	}
	if storeLabel == "" {
		storeLabel = "front-counter"
	}

	return &Service{
		catalog:    cat,
		order:      order.New(),
		ledger:     ledger.New(),
		reports:    reports,
		reportTTL:  reportTTL,
		storeLabel: storeLabel,
	}
}

// Subscribe registers a listener for catalog, order and sale notifications.
func (s *Service) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Service) ListProducts() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.List()
}

func (s *Service) GetProduct(id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Get(id)
}

func (s *Service) CreateProduct(req domain.ProductCreateRequest) (domain.Product, error) {
	s.mu.Lock()
	product, err := s.catalog.Create(req.Name, req.Price, req.Cost, req.Stock)
	listeners := s.snapshotListeners()
	s.mu.Unlock()
	if err != nil {
		return domain.Product{}, err
	}

	log.Printf("[service] product created id=%s name=%q stock=%d", product.ID, product.Name, product.Stock)
	for _, l := range listeners {
		l.CatalogChanged(product)
	}
	return product, nil
}

// SetStock replaces a product's stock level. Open order lines referencing
// the product are not re-clamped here; the sale commit reconciles by
// flooring stock at zero.
func (s *Service) SetStock(id string, stock int) (domain.Product, error) {
	s.mu.Lock()
	product, err := s.catalog.SetStock(id, stock)
	listeners := s.snapshotListeners()
	s.mu.Unlock()
	if err != nil {
		return domain.Product{}, err
	}

	log.Printf("[service] stock set id=%s stock=%d", product.ID, product.Stock)
	for _, l := range listeners {
		l.CatalogChanged(product)
	}
	return product, nil
}

// AddOrderItem puts quantity units of the product into the order, clamped
// against current stock. The result reports how much was actually added and
// any shortfall; a shortfall is informational, not an error.
func (s *Service) AddOrderItem(productID string, quantity int) (domain.AddItemResult, error) {
	s.mu.Lock()
	product, err := s.catalog.Get(productID)
	if err != nil {
		s.mu.Unlock()
		return domain.AddItemResult{}, err
	}
	result, err := s.order.Add(product, quantity)
	if err != nil {
		s.mu.Unlock()
		return domain.AddItemResult{}, err
	}
	lines, total := s.order.Lines(), s.order.Total()
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if result.Shortfall > 0 {
		log.Printf("[service] insufficient stock for %s: added %d of %d requested", productID, result.Added, result.Requested)
	}
	for _, l := range listeners {
		l.OrderChanged(lines, total)
	}
	return result, nil
}

// RemoveOrderItem deletes the order line for the product id. Removing an
// absent id succeeds as a no-op.
func (s *Service) RemoveOrderItem(productID string) {
	s.mu.Lock()
	s.order.Remove(productID)
	lines, total := s.order.Lines(), s.order.Total()
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l.OrderChanged(lines, total)
	}
}

func (s *Service) OrderLines() []domain.OrderLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Lines()
}

func (s *Service) OrderTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Total()
}

func (s *Service) ClearOrder() {
	s.mu.Lock()
	s.order.Clear()
	lines, total := s.order.Lines(), s.order.Total()
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l.OrderChanged(lines, total)
	}
}

// CompleteSale atomically commits the order: every line's quantity is
// deducted from catalog stock (floored at zero when external stock edits
// left less than the order holds), an immutable Sale capturing current
// product costs is appended to the ledger, and the order is cleared. On an
// empty order nothing changes and ErrEmptyOrder is reported.
func (s *Service) CompleteSale() (domain.Sale, error) {
	s.mu.Lock()
	if s.order.IsEmpty() {
		s.mu.Unlock()
		return domain.Sale{}, domain.ErrEmptyOrder
	}

	lines := s.order.Lines()
	total := s.order.Total()

	changed := make([]domain.Product, 0, len(lines))
	saleLines := make([]domain.SaleLine, 0, len(lines))
	for _, line := range lines {
		cost := decimal.Zero
		if product, err := s.catalog.Get(line.ProductID); err == nil {
			cost = product.Cost
		}
		if product, ok := s.catalog.DecrementStock(line.ProductID, line.Quantity); ok {
			changed = append(changed, product)
		}
		saleLines = append(saleLines, domain.SaleLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Cost:      cost,
			Quantity:  line.Quantity,
		})
	}

	sale := domain.Sale{
		ID:        xid.New("sale"),
		Lines:     saleLines,
		Total:     total,
		Timestamp: time.Now().UTC(),
	}
	s.ledger.Append(sale)
	s.order.Clear()

	emptyLines, emptyTotal := s.order.Lines(), s.order.Total()
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	log.Printf("[service] sale completed id=%s lines=%d total=%s", sale.ID, len(sale.Lines), sale.Total.StringFixed(2))
	for _, l := range listeners {
		for _, product := range changed {
			l.CatalogChanged(product)
		}
		l.SaleCompleted(sale)
		l.OrderChanged(emptyLines, emptyTotal)
	}
	return sale, nil
}

func (s *Service) ListSales() []domain.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.All()
}

// ExportSalesCSV writes the full ledger as CSV to w.
func (s *Service) ExportSalesCSV(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.WriteCSV(w)
}

// GetReport returns the aggregate reporting bundle. The ledger is
// append-only, so cache entries keyed by ledger length can never serve
// stale data; cache failures fall back to a fresh build.
func (s *Service) GetReport(ctx context.Context) (domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := fmt.Sprintf("report:%s:%d", s.storeLabel, s.ledger.Len())
	if cached, hit, err := s.reports.Get(ctx, key); err != nil {
		log.Printf("[service] WARN: report cache get failed: %v", err)
	} else if hit {
		return *cached, nil
	}

	built := report.Build(s.ledger.All(), s.catalog)
	if err := s.reports.Set(ctx, key, &built, s.reportTTL); err != nil {
		log.Printf("[service] WARN: report cache set failed: %v", err)
	}
	return built, nil
}

// DaySummary returns the end-of-day receipt data for the whole ledger.
func (s *Service) DaySummary() domain.DaySummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return report.DaySummary(s.ledger.All())
}

// StockAlerts lists out-of-stock and low-stock product names.
func (s *Service) StockAlerts() domain.StockAlerts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.StockAlerts()
}

func (s *Service) snapshotListeners() []Listener {
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	return listeners
}

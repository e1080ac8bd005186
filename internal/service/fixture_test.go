package service

import (
	"sync"
	"testing"
	"time"

	"loja-admin/internal/model"
	"loja-admin/internal/repository"
	"loja-admin/internal/testutil"
	"loja-admin/internal/ws"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ws.Event
}

func (p *recordingPublisher) Publish(e ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

type fixture struct {
	db        *gorm.DB
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	sales     repository.SaleRepository
	ledger    *StockLedger
	events    *recordingPublisher

	catalog CatalogService
	sale    SaleService
	revenue RevenueService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:        db,
		products:  repository.NewProductRepo(db),
		movements: repository.NewStockMovementRepo(db),
		sales:     repository.NewSaleRepo(db),
		events:    &recordingPublisher{},
	}
	f.ledger = NewStockLedger(f.products, f.movements)
	f.catalog = NewCatalogService(f.products, f.movements, f.ledger, db, f.events)
	f.sale = NewSaleService(f.products, f.sales, f.ledger, db, f.events, time.UTC)
	f.revenue = NewRevenueService(f.sales, f.products, time.UTC)
	return f
}

// clock pins timeNow; advance moves it forward between operations so
// ordering by timestamp is deterministic.
type clock struct{ now time.Time }

func freezeTime(t *testing.T, at time.Time) *clock {
	t.Helper()
	c := &clock{now: at}
	prev := timeNow
	timeNow = func() time.Time { return c.now }
	t.Cleanup(func() { timeNow = prev })
	return c
}

func (c *clock) set(at time.Time)              { c.now = at }
func (c *clock) advance(d time.Duration)       { c.now = c.now.Add(d) }
func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func (f *fixture) product(t *testing.T, name, purchase, sale string, stock int) *model.Product {
	t.Helper()
	p, err := f.catalog.Create(&CreateProductInput{
		ProductInput: ProductInput{
			Name:          name,
			PurchasePrice: decp(purchase),
			SalePrice:     decp(sale),
		},
		InitialStock: stock,
	}, "seed@loja")
	require.NoError(t, err)
	return p
}

func (f *fixture) stockOf(t *testing.T, p *model.Product) int {
	t.Helper()
	got, err := f.catalog.GetAny(p.ID)
	require.NoError(t, err)
	return got.Stock
}

func (f *fixture) countRows(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func line(p *model.Product, qty int) SaleLineRequest {
	id := p.ID
	return SaleLineRequest{ProductID: &id, Quantity: &qty}
}

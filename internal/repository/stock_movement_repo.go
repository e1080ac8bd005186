package repository

import (
	"time"

	"loja-admin/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockMovementRepository interface {
	Create(tx *gorm.DB, movement *model.StockMovement) error
	FindByProduct(productID uuid.UUID) ([]model.StockMovement, error)
	GetStockMovement(startDate, endDate time.Time, loc *time.Location) ([]StockMovementData, error)
	GetDashboardStats(lowStockThreshold int) (*DashboardStats, error)
}

// StockMovementData is one day of the stock chart
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// DashboardStats is the catalog overview
type DashboardStats struct {
	ActiveProducts   int64           `json:"active_products"`
	InactiveProducts int64           `json:"inactive_products"`
	LowStockCount    int64           `json:"low_stock_count"`
	StockValuation   decimal.Decimal `json:"stock_valuation"` // Σ stock × purchase price
}

type stockMovementRepo struct {
	db *gorm.DB
}

func NewStockMovementRepo(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db}
}

// Create must be called with the transaction that changed the stock.
func (r *stockMovementRepo) Create(tx *gorm.DB, movement *model.StockMovement) error {
	return tx.Create(movement).Error
}

func (r *stockMovementRepo) FindByProduct(productID uuid.UUID) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.Where("product_id = ?", productID).
		Order("moved_at DESC").
		Find(&movements).Error
	return movements, err
}

// GetStockMovement sums quantities per calendar day of loc. Days are cut in
// Go rather than with SQL DATE(), which would use the session time zone.
func (r *stockMovementRepo) GetStockMovement(startDate, endDate time.Time, loc *time.Location) ([]StockMovementData, error) {
	if loc == nil {
		loc = time.UTC
	}

	var movements []model.StockMovement
	err := r.db.Select("moved_at", "direction", "quantity").
		Where("moved_at >= ? AND moved_at < ?", startDate, endDate).
		Order("moved_at ASC").
		Find(&movements).Error
	if err != nil {
		return nil, err
	}

	results := []StockMovementData{}
	for _, m := range movements {
		date := m.MovedAt.In(loc).Format("2006-01-02")
		if len(results) == 0 || results[len(results)-1].Date != date {
			results = append(results, StockMovementData{Date: date})
		}
		day := &results[len(results)-1]
		if m.Direction == model.DirectionIn {
			day.Inbound += m.Quantity
		} else {
			day.Outbound += m.Quantity
		}
	}
	return results, nil
}

func (r *stockMovementRepo) GetDashboardStats(lowStockThreshold int) (*DashboardStats, error) {
	var stats DashboardStats
	active := r.db.Model(&model.Product{}).Where("active = ?", true).Session(&gorm.Session{})

	if err := active.Count(&stats.ActiveProducts).Error; err != nil {
		return nil, err
	}
	if err := active.Where("stock < ?", lowStockThreshold).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Where("active = ?", false).Count(&stats.InactiveProducts).Error; err != nil {
		return nil, err
	}

	// CAST keeps the driver from handing back a float
	var valuation string
	if err := active.Select("CAST(COALESCE(SUM(stock * purchase_price), 0) AS TEXT)").
		Scan(&valuation).Error; err != nil {
		return nil, err
	}
	v, err := decimal.NewFromString(valuation)
	if err != nil {
		return nil, err
	}
	stats.StockValuation = v

	return &stats, nil
}

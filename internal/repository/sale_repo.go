package repository

import (
	"time"

	"loja-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindByID(id uuid.UUID) (*model.Sale, error)
	// FindByPeriod returns sales with start <= sold_at < end, lines preloaded.
	FindByPeriod(start, end time.Time) ([]model.Sale, error)
	CountByPeriod(start, end time.Time) (int64, error)
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create inserts the sale and its lines; must run inside the workflow's
// transaction.
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Lines", orderedLines).First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindByPeriod(start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Lines", orderedLines).
		Where("sold_at >= ? AND sold_at < ?", start, end).
		Order("sold_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) CountByPeriod(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).
		Where("sold_at >= ? AND sold_at < ?", start, end).
		Count(&count).Error
	return count, err
}

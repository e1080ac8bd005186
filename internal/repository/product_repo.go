package repository

import (
	"strings"

	"loja-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository never filters on the active flag implicitly: every
// lookup says whether it wants active products only or any state.
type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	Save(tx *gorm.DB, product *model.Product) error
	FindAllActive() ([]model.Product, error)
	FindActiveByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	FindAnyByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	FindAnyByIDs(ids []uuid.UUID) ([]model.Product, error)
	Search(filter model.ProductFilter) ([]model.Product, error)
	// AdjustStock adds delta to the stock of an active product. A negative
	// delta only applies while stock stays non-negative. It returns false
	// when no row matched.
	AdjustStock(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (bool, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// conn picks the transaction handle when one is given.
func (r *productRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return r.conn(tx).Create(product).Error
}

func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	return r.conn(tx).Save(product).Error
}

func (r *productRepo) FindAllActive() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("active = ?", true).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindActiveByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.conn(tx).Where("active = ?", true).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindAnyByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.conn(tx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindAnyByIDs(ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *productRepo) Search(filter model.ProductFilter) ([]model.Product, error) {
	query := r.db.Where("active = ?", true)

	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(name))+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("sale_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("sale_price <= ?", *filter.MaxPrice)
	}
	if filter.InStockOnly {
		query = query.Where("stock > ?", 0)
	}

	var products []model.Product
	err := query.Order("name ASC").Find(&products).Error
	return products, err
}

// AdjustStock runs as one conditional UPDATE so concurrent removals cannot
// drive stock below zero even when they both passed an earlier read.
func (r *productRepo) AdjustStock(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (bool, error) {
	query := r.conn(tx).Model(&model.Product{}).
		Where("id = ? AND active = ?", id, true)
	if delta < 0 {
		query = query.Where("stock >= ?", -delta)
	}
	res := query.Updates(map[string]interface{}{
		"stock":      gorm.Expr("stock + ?", delta),
		"updated_by": updatedBy,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

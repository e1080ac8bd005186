package repository

import (
	"errors"
	"testing"

	"loja-admin/internal/model"
	"loja-admin/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProduct(t *testing.T, db *gorm.DB, name string, sale string, stock int, active bool) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:          name,
		Description:   name + " desc",
		PurchasePrice: decimal.RequireFromString("1.00"),
		SalePrice:     decimal.RequireFromString(sale),
		Stock:         stock,
		Active:        true,
	}
	require.NoError(t, db.Create(p).Error)
	if !active {
		// GORM skips zero values on Create, so flip the flag afterwards
		require.NoError(t, db.Model(p).Update("active", false).Error)
		p.Active = false
	}
	return p
}

func TestProductRepoActiveAndAnyLookups(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProductRepo(db)

	on := seedProduct(t, db, "Pomada", "30", 5, true)
	off := seedProduct(t, db, "Gel", "20", 5, false)

	all, err := repo.FindAllActive()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, on.ID, all[0].ID)

	_, err = repo.FindActiveByID(nil, off.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := repo.FindAnyByID(nil, off.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	_, err = repo.FindAnyByID(nil, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	both, err := repo.FindAnyByIDs([]uuid.UUID{on.ID, off.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, both, 2)
}

func TestProductRepoSearch(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProductRepo(db)

	seedProduct(t, db, "Shampoo Anticaspa", "25.00", 3, true)
	seedProduct(t, db, "Shampoo Neutro", "15.00", 0, true)
	seedProduct(t, db, "Condicionador", "40.00", 8, true)
	seedProduct(t, db, "Shampoo Antigo", "20.00", 9, false)

	all, err := repo.Search(model.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byName, err := repo.Search(model.ProductFilter{Name: "SHAMPOO"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	min := decimal.RequireFromString("15")
	max := decimal.RequireFromString("25")
	inRange, err := repo.Search(model.ProductFilter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.Len(t, inRange, 2, "bounds are inclusive")

	inStock, err := repo.Search(model.ProductFilter{Name: "shampoo", InStockOnly: true})
	require.NoError(t, err)
	require.Len(t, inStock, 1)
	assert.Equal(t, "Shampoo Anticaspa", inStock[0].Name)
}

func TestProductRepoSearchMatchesWildcardsLiterally(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProductRepo(db)

	seedProduct(t, db, "Pomada", "20.00", 1, true)
	seedProduct(t, db, "Cera 50% off", "10.00", 1, true)
	seedProduct(t, db, "Gel_Fixador", "12.00", 1, true)
	seedProduct(t, db, `Tonico C:\barba`, "30.00", 1, true)

	cases := map[string][]string{
		"%":     {"Cera 50% off"},
		"50%":   {"Cera 50% off"},
		"_":     {"Gel_Fixador"},
		"l_f":   {"Gel_Fixador"},
		`\`:     {`Tonico C:\barba`},
		"% OFF": {"Cera 50% off"},
		"a%o":   nil,
	}
	for term, want := range cases {
		got, err := repo.Search(model.ProductFilter{Name: term})
		require.NoError(t, err, term)
		names := []string{}
		for _, p := range got {
			names = append(names, p.Name)
		}
		if want == nil {
			want = []string{}
		}
		assert.Equal(t, want, names, "term %q", term)
	}
}

var errAbort = errors.New("abort")

func TestProductRepoCreateUsesTransaction(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProductRepo(db)

	p := &model.Product{
		Name:          "Rolled back",
		PurchasePrice: decimal.RequireFromString("1.00"),
		SalePrice:     decimal.RequireFromString("2.00"),
		Active:        true,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := repo.Create(tx, p); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)
	_, err = repo.FindAnyByID(nil, p.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	kept := &model.Product{Name: "Kept", PurchasePrice: decimal.Zero, SalePrice: decimal.Zero, Active: true}
	require.NoError(t, repo.Create(nil, kept))
	_, err = repo.FindAnyByID(nil, kept.ID)
	assert.NoError(t, err)
}

func TestProductRepoAdjustStock(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProductRepo(db)

	p := seedProduct(t, db, "Cera", "10", 4, true)
	off := seedProduct(t, db, "Tonico", "10", 4, false)

	ok, err := repo.AdjustStock(db, p.ID, 3, "tester")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.AdjustStock(db, p.ID, -8, "tester")
	require.NoError(t, err)
	assert.False(t, ok, "removal beyond stock must not match")

	ok, err = repo.AdjustStock(db, p.ID, -7, "tester")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.AdjustStock(db, off.ID, 1, "tester")
	require.NoError(t, err)
	assert.False(t, ok, "inactive products are not adjusted")

	got, err := repo.FindAnyByID(nil, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
	assert.Equal(t, "tester", got.UpdatedBy)
}

package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewSaleLineFreezesSnapshot(t *testing.T) {
	p := &Product{
		Name:          "Shampoo",
		PurchasePrice: decimal.RequireFromString("10.50"),
		SalePrice:     decimal.RequireFromString("19.90"),
	}
	p.ID = uuid.New()

	line := NewSaleLine(p, 3)

	assert.Equal(t, p.ID, line.ProductID)
	assert.True(t, line.UnitPrice.Equal(p.SalePrice))
	assert.Equal(t, "59.7", line.Subtotal.String())
	assert.Equal(t, "31.5", line.Cost().String())

	// later edits on the product must not leak into the line
	p.Name = "Renamed"
	p.PurchasePrice = decimal.NewFromInt(50)
	assert.Equal(t, "Shampoo", line.ProductName)
	assert.Equal(t, "10.5", line.ProductPurchasePrice.String())
}

func TestSaleLineBeforeSave(t *testing.T) {
	ok := SaleLine{Quantity: 2, UnitPrice: decimal.NewFromInt(5), Subtotal: decimal.NewFromInt(10)}
	assert.NoError(t, ok.BeforeSave(nil))

	unset := SaleLine{Quantity: 2, UnitPrice: decimal.NewFromInt(5)}
	assert.ErrorIs(t, unset.BeforeSave(nil), ErrSubtotalMismatch)

	zero := SaleLine{Quantity: 0, UnitPrice: decimal.NewFromInt(5)}
	assert.ErrorIs(t, zero.BeforeSave(nil), ErrNonPositiveQuantity)
}

func TestRolePrivileges(t *testing.T) {
	assert.True(t, RoleAdmin.Allows(PrivProductDelete))
	assert.True(t, RoleOperator.Allows(PrivSaleCreate))
	assert.False(t, RoleOperator.Allows(PrivRevenueView))
	assert.False(t, RoleViewer.Allows(PrivSaleCreate))
	assert.False(t, Role("GUEST").Allows(PrivProductView))
	assert.Empty(t, Role("GUEST").Privileges())

	// callers must not be able to mutate the shared table
	privs := RoleAdmin.Privileges()
	privs[0] = "hacked"
	assert.True(t, RoleAdmin.Allows(PrivProductView))
}

func TestAccountCheckPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	acc := Account{Email: "ana@loja.com", PasswordHash: string(hash), Role: RoleViewer}
	assert.True(t, acc.CheckPassword("s3cret"))
	assert.False(t, acc.CheckPassword("wrong"))

	resp := acc.ToResponse()
	assert.Equal(t, "ana@loja.com", resp.Email)
	assert.Contains(t, resp.Privileges, PrivRevenueView)
}

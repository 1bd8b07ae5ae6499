package service

import (
	"testing"

	"go-warehouse/internal/model"
	"go-warehouse/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductStartsPendingWithOpeningLedgerEntry(t *testing.T) {
	env := newTestEnv(t)
	staff := seedUser(t, env, "staff@example.com", model.RoleStaff)

	product := seedProduct(t, env, staff, &CreateProductRequest{
		Name:     "Laptop",
		Category: "Electronics",
		SKU:      "SKU-001",
		Stock:    15,
		MinStock: 5,
	})

	assert.Equal(t, model.StatusPending, product.Status)
	require.NotNil(t, product.AddedByID)
	assert.Equal(t, staff.ID, *product.AddedByID)

	var entries []model.Transaction
	require.NoError(t, env.db.Where("product_id = ?", product.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, model.TxIn, entries[0].Type)
	assert.Equal(t, 15, entries[0].Quantity)
	require.NotNil(t, entries[0].UserID)
	assert.Equal(t, staff.ID, *entries[0].UserID)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	env := newTestEnv(t)
	staff := seedUser(t, env, "staff@example.com", model.RoleStaff)

	seedProduct(t, env, staff, &CreateProductRequest{
		Name: "First", Category: "Electronics", SKU: "X1", Stock: 10,
	})

	_, err := env.inventory.CreateProduct(&CreateProductRequest{
		Name: "Second", Category: "Electronics", SKU: "X1", Stock: 3,
	}, staff)
	assert.ErrorIs(t, err, ErrDuplicateSKU)

	var count int64
	require.NoError(t, env.db.Model(&model.Product{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateProductAllowsMissingSKU(t *testing.T) {
	env := newTestEnv(t)
	staff := seedUser(t, env, "staff@example.com", model.RoleStaff)

	first := seedProduct(t, env, staff, &CreateProductRequest{Name: "A", Category: "Misc"})
	second := seedProduct(t, env, staff, &CreateProductRequest{Name: "B", Category: "Misc"})

	assert.Nil(t, first.SKU)
	assert.Nil(t, second.SKU)
}

func TestAdjustStockLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := seedUser(t, env, "admin@example.com", model.RoleAdmin)
	staff := seedUser(t, env, "staff@example.com", model.RoleStaff)

	product := seedProduct(t, env, staff, &CreateProductRequest{
		Name: "Widget", Category: "Parts", SKU: "X1", Stock: 10, MinStock: 5,
	})

	// Stock is frozen while the product awaits approval, for any caller.
	_, err := env.inventory.AdjustStock(product.ID, &StockAdjustment{Quantity: 1, Type: model.TxOut}, staff)
	assert.ErrorIs(t, err, ErrNotApproved)
	_, err = env.inventory.AdjustStock(product.ID, &StockAdjustment{Quantity: 1, Type: model.TxIn}, admin)
	assert.ErrorIs(t, err, ErrNotApproved)

	require.NoError(t, env.approval.Approve(product.ID, admin))

	updated, err := env.inventory.AdjustStock(product.ID, &StockAdjustment{
		Quantity: 3, Type: model.TxOut, Notes: "shipment",
	}, staff)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)

	var entries []model.Transaction
	require.NoError(t, env.db.Where("product_id = ?", product.ID).Order("created_at").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, model.TxIn, entries[0].Type)
	assert.Equal(t, 10, entries[0].Quantity)
	assert.Equal(t, model.TxOut, entries[1].Type)
	assert.Equal(t, 3, entries[1].Quantity)

	// Overdraw is rejected before anything is written.
	_, err = env.inventory.AdjustStock(product.ID, &StockAdjustment{Quantity: 20, Type: model.TxOut}, staff)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var current model.Product
	require.NoError(t, env.db.First(&current, "id = ?", product.ID).Error)
	assert.Equal(t, 7, current.Stock)

	var count int64
	require.NoError(t, env.db.Model(&model.Transaction{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestAdjustStockForbiddenForNonOwnerStaff(t *testing.T) {
	env := newTestEnv(t)
	admin := seedUser(t, env, "admin@example.com", model.RoleAdmin)
	owner := seedUser(t, env, "owner@example.com", model.RoleStaff)
	other := seedUser(t, env, "other@example.com", model.RoleStaff)

	product := seedProduct(t, env, owner, &CreateProductRequest{
		Name: "Widget", Category: "Parts", Stock: 10,
	})
	require.NoError(t, env.approval.Approve(product.ID, admin))

	_, err := env.inventory.AdjustStock(product.ID, &StockAdjustment{Quantity: 1, Type: model.TxIn}, other)
	assert.ErrorIs(t, err, ErrForbidden)

	// Admins may adjust any approved product.
	updated, err := env.inventory.AdjustStock(product.ID, &StockAdjustment{Quantity: 1, Type: model.TxIn}, admin)
	require.NoError(t, err)
	assert.Equal(t, 11, updated.Stock)
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	admin := seedUser(t, env, "admin@example.com", model.RoleAdmin)

	_, err := env.inventory.AdjustStock(uuid.New(), &StockAdjustment{Quantity: 1, Type: model.TxIn}, admin)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListProductsVisibility(t *testing.T) {
	env := newTestEnv(t)
	admin := seedUser(t, env, "admin@example.com", model.RoleAdmin)
	staff1 := seedUser(t, env, "staff1@example.com", model.RoleStaff)
	staff2 := seedUser(t, env, "staff2@example.com", model.RoleStaff)

	seedProduct(t, env, staff1, &CreateProductRequest{Name: "Mine", Category: "A"})
	seedProduct(t, env, staff2, &CreateProductRequest{Name: "Theirs", Category: "A"})
	shared := seedProduct(t, env, staff2, &CreateProductRequest{Name: "Shared", Category: "B"})
	require.NoError(t, env.approval.Approve(shared.ID, admin))

	visible, err := env.inventory.ListProducts(staff1, repository.ProductFilter{})
	require.NoError(t, err)

	names := make([]string, 0, len(visible))
	for _, p := range visible {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "Mine")
	assert.Contains(t, names, "Shared")
	assert.NotContains(t, names, "Theirs")

	all, err := env.inventory.ListProducts(admin, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListProductsFilters(t *testing.T) {
	env := newTestEnv(t)
	admin := seedUser(t, env, "admin@example.com", model.RoleAdmin)

	seedProduct(t, env, admin, &CreateProductRequest{
		Name: "Dell Laptop", Category: "Electronics", Stock: 15, Supplier: "Dell",
	})
	seedProduct(t, env, admin, &CreateProductRequest{
		Name: "Mouse", Category: "Accessories", Stock: 3, Supplier: "Logitech",
	})

	bySearch, err := env.inventory.ListProducts(admin, repository.ProductFilter{Search: "Dell"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Dell Laptop", bySearch[0].Name)

	byCategory, err := env.inventory.ListProducts(admin, repository.ProductFilter{Category: "Accessories"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Mouse", byCategory[0].Name)

	threshold := 5
	byStock, err := env.inventory.ListProducts(admin, repository.ProductFilter{MaxStock: &threshold})
	require.NoError(t, err)
	require.Len(t, byStock, 1)
	assert.Equal(t, "Mouse", byStock[0].Name)
}

func TestEditProductInfoPermissions(t *testing.T) {
	env := newTestEnv(t)
	admin := seedUser(t, env, "admin@example.com", model.RoleAdmin)
	owner := seedUser(t, env, "owner@example.com", model.RoleStaff)
	other := seedUser(t, env, "other@example.com", model.RoleStaff)

	product := seedProduct(t, env, owner, &CreateProductRequest{
		Name: "Widget", Category: "Parts", SKU: "SKU-9", Stock: 4,
	})

	_, err := env.inventory.EditProductInfo(product.ID, &EditProductRequest{
		Name: "Renamed", Category: "Parts",
	}, other)
	assert.ErrorIs(t, err, ErrForbidden)

	edited, err := env.inventory.EditProductInfo(product.ID, &EditProductRequest{
		Name: "Renamed", Category: "Parts", Price: floatPtr(9.5),
	}, owner)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", edited.Name)

	// Stock, SKU and status are untouched by metadata edits.
	var current model.Product
	require.NoError(t, env.db.First(&current, "id = ?", product.ID).Error)
	assert.Equal(t, 4, current.Stock)
	require.NotNil(t, current.SKU)
	assert.Equal(t, "SKU-9", *current.SKU)
	assert.Equal(t, model.StatusPending, current.Status)

	_, err = env.inventory.EditProductInfo(product.ID, &EditProductRequest{
		Name: "Admin rename", Category: "Parts",
	}, admin)
	assert.NoError(t, err)
}

func TestDeleteProductRules(t *testing.T) {
	env := newTestEnv(t)
	admin := seedUser(t, env, "admin@example.com", model.RoleAdmin)
	owner := seedUser(t, env, "owner@example.com", model.RoleStaff)
	other := seedUser(t, env, "other@example.com", model.RoleStaff)

	pending := seedProduct(t, env, owner, &CreateProductRequest{Name: "Pending", Category: "A", Stock: 2})
	approved := seedProduct(t, env, owner, &CreateProductRequest{Name: "Approved", Category: "A", Stock: 2})
	require.NoError(t, env.approval.Approve(approved.ID, admin))

	assert.ErrorIs(t, env.inventory.DeleteProduct(pending.ID, other), ErrForbidden)
	assert.ErrorIs(t, env.inventory.DeleteProduct(approved.ID, owner), ErrForbidden)

	require.NoError(t, env.inventory.DeleteProduct(pending.ID, owner))
	require.NoError(t, env.inventory.DeleteProduct(approved.ID, admin))

	// Ledger entries go with their product.
	var count int64
	require.NoError(t, env.db.Model(&model.Transaction{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestGetDetailReturnsRecentHistory(t *testing.T) {
	env := newTestEnv(t)
	admin := seedUser(t, env, "admin@example.com", model.RoleAdmin)

	product := seedProduct(t, env, admin, &CreateProductRequest{Name: "Widget", Category: "A", Stock: 10})
	require.NoError(t, env.approval.Approve(product.ID, admin))

	_, err := env.inventory.AdjustStock(product.ID, &StockAdjustment{Quantity: 2, Type: model.TxOut}, admin)
	require.NoError(t, err)

	detail, err := env.inventory.GetDetail(product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, detail.Product.ID)
	require.Len(t, detail.Transactions, 2)
	assert.EqualValues(t, 2, detail.TotalTransactions)

	_, err = env.inventory.GetDetail(uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

package service

import (
	"testing"

	"go-warehouse/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveRecordsReviewer(t *testing.T) {
	env := newTestEnv(t)
	admin := seedUser(t, env, "admin@example.com", model.RoleAdmin)
	staff := seedUser(t, env, "staff@example.com", model.RoleStaff)

	product := seedProduct(t, env, staff, &CreateProductRequest{
		Name: "Forklift", Category: "Machinery", Stock: 2,
	})

	require.NoError(t, env.approval.Approve(product.ID, admin))

	detail, err := env.inventory.GetDetail(product.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, detail.Product.Status)
	require.NotNil(t, detail.Product.ApprovedByID)
	assert.Equal(t, admin.ID, *detail.Product.ApprovedByID)
}

func TestRejectedProductCanStillBeApproved(t *testing.T) {
	env := newTestEnv(t)
	admin := seedUser(t, env, "admin@example.com", model.RoleAdmin)
	staff := seedUser(t, env, "staff@example.com", model.RoleStaff)

	product := seedProduct(t, env, staff, &CreateProductRequest{
		Name: "Scanner", Category: "Electronics", Stock: 1,
	})

	require.NoError(t, env.approval.Reject(product.ID, admin))

	detail, err := env.inventory.GetDetail(product.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, detail.Product.Status)

	// The review decision is not final.
	require.NoError(t, env.approval.Approve(product.ID, admin))

	detail, err = env.inventory.GetDetail(product.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, detail.Product.Status)
}

func TestApproveUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	admin := seedUser(t, env, "admin@example.com", model.RoleAdmin)

	err := env.approval.Approve(uuid.New(), admin)
	assert.ErrorIs(t, err, ErrProductNotFound)

	err = env.approval.Reject(uuid.New(), admin)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListPendingExcludesReviewed(t *testing.T) {
	env := newTestEnv(t)
	admin := seedUser(t, env, "admin@example.com", model.RoleAdmin)
	staff := seedUser(t, env, "staff@example.com", model.RoleStaff)

	first := seedProduct(t, env, staff, &CreateProductRequest{
		Name: "First", Category: "Misc",
	})
	seedProduct(t, env, staff, &CreateProductRequest{
		Name: "Second", Category: "Misc",
	})

	require.NoError(t, env.approval.Approve(first.ID, admin))

	pending, err := env.approval.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Second", pending[0].Name)
}

package service

import (
	"testing"

	"go-warehouse/internal/model"
	"go-warehouse/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full service stack over an in-memory database.
type testEnv struct {
	db        *gorm.DB
	userRepo  repository.UserRepository
	auth      AuthService
	users     UserService
	inventory InventoryService
	approval  ApprovalService
	dashboard DashboardService
	reports   ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Product{}, &model.Transaction{}))

	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	reportRepo := repository.NewReportRepo(db)

	return &testEnv{
		db:        db,
		userRepo:  userRepo,
		auth:      NewAuthService(userRepo),
		users:     NewUserService(userRepo, reportRepo),
		inventory: NewInventoryService(productRepo, txRepo, db),
		approval:  NewApprovalService(productRepo),
		dashboard: NewDashboardService(reportRepo, txRepo, userRepo),
		reports:   NewReportService(reportRepo),
	}
}

func seedUser(t *testing.T, env *testEnv, email string, role model.Role) *model.User {
	t.Helper()

	user := &model.User{
		Email:    email,
		FullName: "Test " + string(role),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, env *testEnv, owner *model.User, req *CreateProductRequest) *model.Product {
	t.Helper()

	product, err := env.inventory.CreateProduct(req, owner)
	require.NoError(t, err)
	return product
}

func floatPtr(v float64) *float64 { return &v }

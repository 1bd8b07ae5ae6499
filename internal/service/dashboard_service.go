package service

import (
	"time"

	"go-warehouse/internal/model"
	"go-warehouse/internal/repository"
)

// DashboardStats is the role-specific overview. Admin counters and the
// "my products" counters are mutually exclusive, matching what each role's
// dashboard actually shows.
type DashboardStats struct {
	PendingProducts    int64                      `json:"pending_products"`
	ApprovedProducts   int64                      `json:"approved_products"`
	TotalStaff         int64                      `json:"total_staff"`
	MyProducts         int64                      `json:"my_products"`
	MyPending          int64                      `json:"my_pending"`
	TotalProducts      int64                      `json:"total_products"`
	TransactionsToday  int64                      `json:"transactions_today"`
	LowStock           int64                      `json:"low_stock"`
	TotalValue         float64                    `json:"total_value"`
	Categories         []repository.CategoryCount `json:"categories"`
	RecentTransactions []model.Transaction        `json:"recent_transactions"`
	LowStockItems      []model.Product            `json:"low_stock_items"`
}

type DashboardService interface {
	GetStats(viewer *model.User) (*DashboardStats, error)
}

type dashboardService struct {
	reportRepo repository.ReportRepository
	txRepo     repository.TransactionRepository
	userRepo   repository.UserRepository
}

func NewDashboardService(reportRepo repository.ReportRepository, txRepo repository.TransactionRepository, userRepo repository.UserRepository) DashboardService {
	return &dashboardService{reportRepo: reportRepo, txRepo: txRepo, userRepo: userRepo}
}

func (s *dashboardService) GetStats(viewer *model.User) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if viewer.IsAdmin() {
		pending, err := s.reportRepo.CountByStatus(model.StatusPending)
		if err != nil {
			return nil, err
		}
		approved, err := s.reportRepo.CountByStatus(model.StatusApproved)
		if err != nil {
			return nil, err
		}
		staffCount, err := s.userRepo.CountByRole(model.RoleStaff)
		if err != nil {
			return nil, err
		}
		stats.PendingProducts = pending
		stats.ApprovedProducts = approved
		stats.TotalProducts = approved
		stats.TotalStaff = staffCount
	} else {
		owned, err := s.reportRepo.CountOwned(viewer.ID)
		if err != nil {
			return nil, err
		}
		myPending, err := s.reportRepo.CountByOwner(viewer.ID, model.StatusPending)
		if err != nil {
			return nil, err
		}
		myApproved, err := s.reportRepo.CountByOwner(viewer.ID, model.StatusApproved)
		if err != nil {
			return nil, err
		}
		stats.MyProducts = owned
		stats.MyPending = myPending
		stats.TotalProducts = myApproved
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var err error
	if stats.TransactionsToday, err = s.txRepo.CountSince(viewer, startOfDay); err != nil {
		return nil, err
	}
	if stats.LowStock, err = s.reportRepo.LowStockCount(); err != nil {
		return nil, err
	}
	if stats.TotalValue, err = s.reportRepo.ApprovedValue(); err != nil {
		return nil, err
	}
	if stats.Categories, err = s.reportRepo.CategoryBreakdown(viewer); err != nil {
		return nil, err
	}
	if stats.RecentTransactions, err = s.txRepo.FindRecent(viewer, 10); err != nil {
		return nil, err
	}
	if stats.LowStockItems, err = s.reportRepo.LowStockItems(viewer, 10); err != nil {
		return nil, err
	}

	return stats, nil
}

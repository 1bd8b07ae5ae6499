package repository

import (
	"time"

	"go-warehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyReportRow aggregates one calendar day of ledger activity.
type DailyReportRow struct {
	Date         string `json:"date"`
	Transactions int64  `json:"transactions"`
	StockIn      int64  `json:"stock_in"`
	StockOut     int64  `json:"stock_out"`
}

// CategoryReportRow aggregates approved products by category.
type CategoryReportRow struct {
	Category     string  `json:"category"`
	ProductCount int64   `json:"product_count"`
	TotalStock   int64   `json:"total_stock"`
	TotalValue   float64 `json:"total_value"`
}

// SupplierReportRow aggregates approved products by supplier and country.
type SupplierReportRow struct {
	Supplier        string  `json:"supplier"`
	SupplierCountry string  `json:"supplier_country"`
	ProductCount    int64   `json:"product_count"`
	TotalStock      int64   `json:"total_stock"`
	TotalValue      float64 `json:"total_value"`
}

// StaffReportRow summarizes one staff member's product submissions.
type StaffReportRow struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	ProductCount  int64  `json:"product_count"`
	ApprovedCount int64  `json:"approved_count"`
	PendingCount  int64  `json:"pending_count"`
}

// ActivityRow is the fallback report: transaction counts per day.
type ActivityRow struct {
	Date         string `json:"date"`
	Transactions int64  `json:"transactions"`
}

// CategoryCount backs the dashboard category breakdown chart.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type ReportRepository interface {
	DailySummary(since time.Time) ([]DailyReportRow, error)
	CategorySummary() ([]CategoryReportRow, error)
	SupplierSummary() ([]SupplierReportRow, error)
	StaffPerformance() ([]StaffReportRow, error)
	RecentActivity(limit int) ([]ActivityRow, error)
	CountByStatus(status model.ProductStatus) (int64, error)
	CountByOwner(ownerID uuid.UUID, status model.ProductStatus) (int64, error)
	CountOwned(ownerID uuid.UUID) (int64, error)
	LowStockCount() (int64, error)
	LowStockItems(viewer *model.User, limit int) ([]model.Product, error)
	ApprovedValue() (float64, error)
	CategoryBreakdown(viewer *model.User) ([]CategoryCount, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) DailySummary(since time.Time) ([]DailyReportRow, error) {
	var results []DailyReportRow

	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(created_at) as date,
			COUNT(*) as transactions,
			COALESCE(SUM(CASE WHEN type = 'in' THEN quantity ELSE 0 END), 0) as stock_in,
			COALESCE(SUM(CASE WHEN type = 'out' THEN quantity ELSE 0 END), 0) as stock_out
		`).
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date DESC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row DailyReportRow
		if err := rows.Scan(&row.Date, &row.Transactions, &row.StockIn, &row.StockOut); err != nil {
			return nil, err
		}
		results = append(results, row)
	}

	return results, rows.Err()
}

func (r *reportRepo) CategorySummary() ([]CategoryReportRow, error) {
	var results []CategoryReportRow
	err := r.db.Model(&model.Product{}).
		Select(`
			category,
			COUNT(*) as product_count,
			COALESCE(SUM(stock), 0) as total_stock,
			COALESCE(SUM(stock * COALESCE(price, 0)), 0) as total_value
		`).
		Where("status = ?", model.StatusApproved).
		Group("category").
		Order("total_value DESC").
		Scan(&results).Error
	return results, err
}

func (r *reportRepo) SupplierSummary() ([]SupplierReportRow, error) {
	var results []SupplierReportRow
	err := r.db.Model(&model.Product{}).
		Select(`
			supplier,
			supplier_country,
			COUNT(*) as product_count,
			COALESCE(SUM(stock), 0) as total_stock,
			COALESCE(SUM(stock * COALESCE(price, 0)), 0) as total_value
		`).
		Where("status = ?", model.StatusApproved).
		Group("supplier, supplier_country").
		Order("product_count DESC").
		Scan(&results).Error
	return results, err
}

func (r *reportRepo) StaffPerformance() ([]StaffReportRow, error) {
	var results []StaffReportRow
	err := r.db.Model(&model.User{}).
		Select(`
			users.full_name,
			users.email,
			COUNT(products.id) as product_count,
			COALESCE(SUM(CASE WHEN products.status = 'approved' THEN 1 ELSE 0 END), 0) as approved_count,
			COALESCE(SUM(CASE WHEN products.status = 'pending' THEN 1 ELSE 0 END), 0) as pending_count
		`).
		Joins("LEFT JOIN products ON products.added_by_id = users.id").
		Where("users.role = ?", model.RoleStaff).
		Group("users.id, users.full_name, users.email").
		Order("product_count DESC").
		Scan(&results).Error
	return results, err
}

func (r *reportRepo) RecentActivity(limit int) ([]ActivityRow, error) {
	var results []ActivityRow
	err := r.db.Model(&model.Transaction{}).
		Select("DATE(created_at) as date, COUNT(*) as transactions").
		Group("DATE(created_at)").
		Order("date DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *reportRepo) CountByStatus(status model.ProductStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *reportRepo) CountByOwner(ownerID uuid.UUID, status model.ProductStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("added_by_id = ? AND status = ?", ownerID, status).
		Count(&count).Error
	return count, err
}

func (r *reportRepo) CountOwned(ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("added_by_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *reportRepo) LowStockCount() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("stock <= min_stock").Count(&count).Error
	return count, err
}

func (r *reportRepo) LowStockItems(viewer *model.User, limit int) ([]model.Product, error) {
	q := r.db.Where("stock <= min_stock AND status = ?", model.StatusApproved)
	if !viewer.IsAdmin() {
		q = q.Where("added_by_id = ?", viewer.ID)
	}

	var products []model.Product
	err := q.Order("stock ASC").Limit(limit).Find(&products).Error
	return products, err
}

func (r *reportRepo) ApprovedValue() (float64, error) {
	var value float64
	err := r.db.Model(&model.Product{}).
		Where("status = ?", model.StatusApproved).
		Select("COALESCE(SUM(stock * COALESCE(price, 0)), 0)").
		Scan(&value).Error
	return value, err
}

func (r *reportRepo) CategoryBreakdown(viewer *model.User) ([]CategoryCount, error) {
	q := r.db.Model(&model.Product{}).Where("status = ?", model.StatusApproved)
	if !viewer.IsAdmin() {
		q = q.Where("added_by_id = ?", viewer.ID)
	}

	var results []CategoryCount
	err := q.Select("category, COUNT(*) as count").Group("category").Scan(&results).Error
	return results, err
}

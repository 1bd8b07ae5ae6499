package service

import (
	"sort"
	"time"

	"go-warehouse/internal/model"
	"go-warehouse/internal/repository"
)

// Report wraps one report page payload. Type echoes the grouping that was
// actually served, which may differ from the requested one when a staff
// user asks for an admin-only grouping.
type Report struct {
	Type string      `json:"report_type"`
	Data interface{} `json:"data"`
}

// MonthlyStats feeds the dashboard in/out chart, one slice entry per month.
type MonthlyStats struct {
	Months []string `json:"months"`
	InQty  []int64  `json:"in_qty"`
	OutQty []int64  `json:"out_qty"`
}

// PendingCounts backs the notification badge polling endpoint.
type PendingCounts struct {
	AdminPending int64 `json:"admin_pending"`
	StaffPending int64 `json:"staff_pending"`
}

// dailyWindow is the trailing range of the daily report.
const dailyWindow = 30 * 24 * time.Hour

type ReportService interface {
	GetReport(viewer *model.User, reportType string) (*Report, error)
	GetMonthlyStats() (*MonthlyStats, error)
	GetPendingCounts(viewer *model.User) (*PendingCounts, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) GetReport(viewer *model.User, reportType string) (*Report, error) {
	switch reportType {
	case "daily":
		rows, err := s.reportRepo.DailySummary(time.Now().Add(-dailyWindow))
		if err != nil {
			return nil, err
		}
		return &Report{Type: "daily", Data: rows}, nil

	case "products":
		rows, err := s.reportRepo.CategorySummary()
		if err != nil {
			return nil, err
		}
		return &Report{Type: "products", Data: rows}, nil

	case "suppliers":
		rows, err := s.reportRepo.SupplierSummary()
		if err != nil {
			return nil, err
		}
		return &Report{Type: "suppliers", Data: rows}, nil

	case "staff":
		if viewer.IsAdmin() {
			rows, err := s.reportRepo.StaffPerformance()
			if err != nil {
				return nil, err
			}
			return &Report{Type: "staff", Data: rows}, nil
		}
	}

	// Unknown type, or staff grouping requested without the admin role.
	rows, err := s.reportRepo.RecentActivity(10)
	if err != nil {
		return nil, err
	}
	return &Report{Type: "activity", Data: rows}, nil
}

// GetMonthlyStats rolls daily ledger aggregates for the trailing six months
// up into per-month totals. The rollup happens here so the repository query
// stays portable across database engines.
func (s *reportService) GetMonthlyStats() (*MonthlyStats, error) {
	rows, err := s.reportRepo.DailySummary(time.Now().AddDate(0, -6, 0))
	if err != nil {
		return nil, err
	}

	type totals struct{ in, out int64 }
	byMonth := make(map[string]*totals)
	for _, row := range rows {
		if len(row.Date) < 7 {
			continue
		}
		month := row.Date[:7] // YYYY-MM
		t, ok := byMonth[month]
		if !ok {
			t = &totals{}
			byMonth[month] = t
		}
		t.in += row.StockIn
		t.out += row.StockOut
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	stats := &MonthlyStats{Months: months}
	for _, month := range months {
		stats.InQty = append(stats.InQty, byMonth[month].in)
		stats.OutQty = append(stats.OutQty, byMonth[month].out)
	}
	return stats, nil
}

func (s *reportService) GetPendingCounts(viewer *model.User) (*PendingCounts, error) {
	counts := &PendingCounts{}
	if viewer == nil {
		return counts, nil
	}

	pending, err := s.reportRepo.CountByStatus(model.StatusPending)
	if err != nil {
		return nil, err
	}
	counts.AdminPending = pending

	if !viewer.IsAdmin() {
		own, err := s.reportRepo.CountByOwner(viewer.ID, model.StatusPending)
		if err != nil {
			return nil, err
		}
		counts.StaffPending = own
	}

	return counts, nil
}

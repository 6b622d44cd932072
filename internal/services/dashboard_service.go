// internal/services/dashboard_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rahulbala1799/TT/internal/models"
	"github.com/rahulbala1799/TT/internal/utils"
)

// DashboardService computes the aggregates the dashboard and calendar views
// show: counts, revenue and distributions derived from the order list. The
// shop's volume is small, so these work off the loaded orders rather than
// aggregate SQL.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStats struct {
	TotalOrders     int64              `json:"totalOrders"`
	ActiveOrders    int64              `json:"activeOrders"`
	TotalRevenue    float64            `json:"totalRevenue"`
	TotalRevenueEUR string             `json:"totalRevenueFormatted"`
	StatusCounts    map[string]int64   `json:"statusCounts"`
	StatusShare     map[string]float64 `json:"statusShare"`
	PriorityCounts  map[string]int64   `json:"priorityCounts"`
}

// Stats summarizes the whole order book. An order counts under its main
// status; active means neither cancelled nor delivered.
func (s *DashboardService) Stats() (*DashboardStats, error) {
	orders, err := s.ordersWithActiveStatuses(nil)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		StatusCounts:   make(map[string]int64),
		StatusShare:    make(map[string]float64),
		PriorityCounts: make(map[string]int64),
	}

	for _, order := range orders {
		stats.TotalOrders++
		stats.TotalRevenue += order.TotalPrice
		stats.PriorityCounts[string(order.Priority)]++

		main := models.MainStatus(order.Statuses)
		stats.StatusCounts[string(main)]++
		if main != models.StatusCancelled && main != models.StatusDelivered {
			stats.ActiveOrders++
		}
	}

	for label, count := range stats.StatusCounts {
		stats.StatusShare[label] = utils.Percentage(float64(count), float64(stats.TotalOrders))
	}
	stats.TotalRevenueEUR = utils.FormatEuro(stats.TotalRevenue)

	return stats, nil
}

// CalendarDay is one due-date bucket in the month view.
type CalendarDay struct {
	Date   string         `json:"date"`
	Orders []models.Order `json:"orders"`
}

// Calendar groups the month's orders by due date. Orders without a due date
// are omitted; days without orders are omitted.
func (s *DashboardService) Calendar(year int, month time.Month) ([]CalendarDay, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	scope := func(db *gorm.DB) *gorm.DB {
		return db.Where("due_date >= ? AND due_date < ?", start, end)
	}
	orders, err := s.ordersWithActiveStatuses(scope)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][]models.Order)
	var dates []string
	for _, order := range orders {
		if order.DueDate == nil {
			continue
		}
		key := order.DueDate.Format("2006-01-02")
		if _, seen := buckets[key]; !seen {
			dates = append(dates, key)
		}
		buckets[key] = append(buckets[key], order)
	}

	days := make([]CalendarDay, 0, len(dates))
	for _, date := range dates {
		days = append(days, CalendarDay{Date: date, Orders: buckets[date]})
	}
	return days, nil
}

func (s *DashboardService) ordersWithActiveStatuses(scope func(*gorm.DB) *gorm.DB) ([]models.Order, error) {
	query := s.db.
		Preload("Customer").
		Preload("OrderItems").
		Preload("Statuses", activeStatusesNewestFirst).
		Order("due_date ASC, created_at DESC")
	if scope != nil {
		query = scope(query)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	for i := range orders {
		orders[i].EnsureCollections()
	}
	return orders, nil
}

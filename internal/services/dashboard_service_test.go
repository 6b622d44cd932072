// internal/services/dashboard_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/rahulbala1799/TT/internal/database"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	orders    *OrderService
	dashboard *DashboardService
}

func (s *DashboardServiceTestSuite) SetupTest() {
	db, err := database.OpenTestDB()
	s.Require().NoError(err)
	s.db = db
	s.orders = NewOrderService(db, NewStatusService(db))
	s.dashboard = NewDashboardService(db)
}

func (s *DashboardServiceTestSuite) TestStats() {
	_, err := s.orders.Create(&CreateOrderRequest{
		Title:    "Flyers",
		Priority: "HIGH",
		Products: []ProductInput{{Name: "Flyers", Quantity: 100, Price: 0.15}},
	})
	s.Require().NoError(err)

	second, err := s.orders.Create(&CreateOrderRequest{
		Title:    "Posters",
		Products: []ProductInput{{Name: "Posters", Quantity: 10, Price: 2}},
	})
	s.Require().NoError(err)
	_, err = s.orders.Cancel(second.ID)
	s.Require().NoError(err)

	stats, err := s.dashboard.Stats()
	s.Require().NoError(err)

	s.EqualValues(2, stats.TotalOrders)
	s.EqualValues(1, stats.ActiveOrders)
	s.InDelta(35.0, stats.TotalRevenue, 1e-9)
	s.Equal("€35.00", stats.TotalRevenueEUR)
	s.EqualValues(1, stats.StatusCounts["ENQUIRY"])
	s.EqualValues(1, stats.StatusCounts["CANCELLED"])
	s.InDelta(50.0, stats.StatusShare["ENQUIRY"], 1e-9)
	s.EqualValues(1, stats.PriorityCounts["HIGH"])
	s.EqualValues(1, stats.PriorityCounts["NORMAL"])
}

func (s *DashboardServiceTestSuite) TestCalendarGroupsByDueDate() {
	for _, due := range []string{"2026-09-10", "2026-09-10", "2026-09-22", "2026-10-01"} {
		_, err := s.orders.Create(&CreateOrderRequest{Title: "Job " + due, DueDate: due})
		s.Require().NoError(err)
	}

	days, err := s.dashboard.Calendar(2026, time.September)
	s.Require().NoError(err)
	s.Require().Len(days, 2)

	s.Equal("2026-09-10", days[0].Date)
	s.Len(days[0].Orders, 2)
	s.Equal("2026-09-22", days[1].Date)
	s.Len(days[1].Orders, 1)
}

func TestDashboardServiceSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}

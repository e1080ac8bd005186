package service

import (
	"time"

	"loja-admin/internal/repository"
)

type DashboardService interface {
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetDashboardStats() (*repository.DashboardStats, error)
}

type dashboardService struct {
	movementRepo      repository.StockMovementRepository
	lowStockThreshold int
	loc               *time.Location
}

func NewDashboardService(mRepo repository.StockMovementRepository, lowStockThreshold int, loc *time.Location) DashboardService {
	return &dashboardService{
		movementRepo:      mRepo,
		lowStockThreshold: lowStockThreshold,
		loc:               locationOrLocal(loc),
	}
}

// GetStockMovement covers the last days calendar days, today included.
func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	if days <= 0 || days > 366 {
		return nil, validationError("days must be between 1 and 366")
	}
	today := timeNow().In(s.loc)
	from, to, err := dayRange(today.AddDate(0, 0, -(days-1)), today, s.loc)
	if err != nil {
		return nil, err
	}

	data, err := s.movementRepo.GetStockMovement(from, to, s.loc)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []repository.StockMovementData{}
	}
	return data, nil
}

func (s *dashboardService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.movementRepo.GetDashboardStats(s.lowStockThreshold)
}

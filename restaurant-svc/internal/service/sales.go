package service

import (
	"context"
	"fmt"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"
)

const salesTopLimit = 10

type SalesReport struct {
	Day    string              `json:"day"`
	Dishes []domain.SalesEntry `json:"dishes"`
	Sets   []domain.SalesEntry `json:"sets"`
}

type SalesService struct {
	reader SalesReader
	now    func() time.Time
}

// NewSalesService accepts a nil reader and then always reports no sales.
func NewSalesService(reader SalesReader) *SalesService {
	return &SalesService{reader: reader, now: time.Now}
}

func (s *SalesService) Today(ctx context.Context) (*SalesReport, error) {
	day := s.now().UTC()
	report := &SalesReport{
		Day:    day.Format(time.DateOnly),
		Dishes: []domain.SalesEntry{},
		Sets:   []domain.SalesEntry{},
	}
	if s.reader == nil {
		return report, nil
	}

	dishes, err := s.reader.TopSales(ctx, day, domain.ItemKindDish, salesTopLimit)
	if err != nil {
		return nil, fmt.Errorf("read dish sales: %w", err)
	}
	sets, err := s.reader.TopSales(ctx, day, domain.ItemKindSet, salesTopLimit)
	if err != nil {
		return nil, fmt.Errorf("read set sales: %w", err)
	}
	if dishes != nil {
		report.Dishes = dishes
	}
	if sets != nil {
		report.Sets = sets
	}
	return report, nil
}

var _ SalesServiceInterface = (*SalesService)(nil)

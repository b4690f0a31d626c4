// Package dashboard is the read-side reducer over the herd entities. It
// never mutates anything except when persisting the nightly snapshot.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/domain/models"
	"github.com/mamadbah2/manea/internal/repository"
)

const (
	dateLayout     = "2006-01-02"
	trailingWindow = 30 // days of milk production summed into the stats
)

// Service aggregates current herd state.
type Service struct {
	farms   repository.FarmRepository
	animals repository.AnimalRepository
	alerts  repository.AlertRepository
	milk    repository.MilkRepository
	reports repository.ReportRepository
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a dashboard service instance.
func NewService(
	farms repository.FarmRepository,
	animals repository.AnimalRepository,
	alerts repository.AlertRepository,
	milk repository.MilkRepository,
	reports repository.ReportRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		farms:   farms,
		animals: animals,
		alerts:  alerts,
		milk:    milk,
		reports: reports,
		logger:  logger,
		now:     time.Now,
	}
}

// Stats computes the herd summary: active animal count, farm count, active
// alert count, active animals grouped by category and sale status, and the
// milk liters produced over the trailing 30 days. The window bound is
// date-granular: records dated exactly 30 days ago are included.
func (s *Service) Stats(ctx context.Context) (*models.DashboardStats, error) {
	activeAnimals, err := s.animals.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	totalFarms, err := s.farms.Count(ctx)
	if err != nil {
		return nil, err
	}

	activeAlerts, err := s.alerts.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.animals.CountActiveByCategory(ctx)
	if err != nil {
		return nil, err
	}
	if byCategory == nil {
		byCategory = map[models.Category]int{}
	}

	bySale, err := s.animals.CountActiveBySaleStatus(ctx)
	if err != nil {
		return nil, err
	}
	if bySale == nil {
		bySale = map[models.SaleStatus]int{}
	}

	minDate := s.now().UTC().AddDate(0, 0, -trailingWindow).Format(dateLayout)
	liters, err := s.milk.SumLitersSince(ctx, minDate)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		ActiveAnimals:     activeAnimals,
		TotalFarms:        totalFarms,
		ActiveAlerts:      activeAlerts,
		AnimalsByCategory: byCategory,
		AnimalsBySale:     bySale,
		MilkLiters30d:     liters,
	}, nil
}

// Snapshot computes the current stats and persists them as a herd report.
// The scheduler runs this nightly.
func (s *Service) Snapshot(ctx context.Context) (*models.HerdReport, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	report := models.HerdReport{
		ID:                uuid.NewString(),
		ReportDate:        now.Format(dateLayout),
		ActiveAnimals:     stats.ActiveAnimals,
		TotalFarms:        stats.TotalFarms,
		ActiveAlerts:      stats.ActiveAlerts,
		AnimalsByCategory: stats.AnimalsByCategory,
		AnimalsBySale:     stats.AnimalsBySale,
		MilkLiters30d:     stats.MilkLiters30d,
		CreatedAt:         now,
	}

	if err := s.reports.Insert(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info("herd report stored",
		zap.String("report_date", report.ReportDate),
		zap.Int("active_animals", report.ActiveAnimals))
	return &report, nil
}

// Package export pushes the herd inventory to a Google Spreadsheet on
// demand.
package export

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/domain/models"
	"github.com/mamadbah2/manea/internal/repository"
	"github.com/mamadbah2/manea/internal/repository/sheets"
)

const inventoryRange = "Inventory!A:J"

// Service writes inventory exports.
type Service struct {
	animals repository.AnimalRepository
	writer  sheets.RowWriter
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires an export service instance.
func NewService(animals repository.AnimalRepository, writer sheets.RowWriter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		animals: animals,
		writer:  writer,
		logger:  logger,
		now:     time.Now,
	}
}

// ExportInventory appends one row per animal (optionally scoped to a farm)
// to the configured spreadsheet and returns the exported row count.
func (s *Service) ExportInventory(ctx context.Context, farmID string) (int, error) {
	animals, err := s.animals.List(ctx, farmID)
	if err != nil {
		return 0, err
	}
	if len(animals) == 0 {
		return 0, nil
	}

	exportedAt := s.now().UTC().Format(time.RFC3339)
	rows := make([][]interface{}, 0, len(animals))
	for _, animal := range animals {
		rows = append(rows, inventoryRow(animal, exportedAt))
	}

	if err := s.writer.AppendRows(ctx, inventoryRange, rows); err != nil {
		return 0, err
	}

	s.logger.Info("inventory exported", zap.Int("animals", len(rows)), zap.String("farm_id", farmID))
	return len(rows), nil
}

func inventoryRow(animal models.Animal, exportedAt string) []interface{} {
	weight := ""
	if animal.WeightKg != nil {
		weight = formatFloat(*animal.WeightKg)
	}

	return []interface{}{
		animal.TagNumber,
		animal.Name,
		string(animal.Category),
		string(animal.Lifecycle),
		string(animal.SaleStatus),
		animal.Breed,
		animal.BirthDate,
		weight,
		animal.FarmID,
		exportedAt,
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

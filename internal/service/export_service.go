package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
	appErrors "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/errors"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/export"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/storage"
)

// ExportFormat is the requested export file type.
type ExportFormat string

// Supported export formats.
const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportResult describes a rendered export and its signed download token.
type ExportResult struct {
	ExportID      string    `json:"exportId"`
	Format        string    `json:"format"`
	FileName      string    `json:"fileName"`
	DownloadToken string    `json:"downloadToken"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// ExportService renders a mentor's weekly schedule to CSV or PDF, stores the
// file locally and hands back a signed, expiring download token.
type ExportService struct {
	availability *AvailabilityService
	csv          *export.CSVExporter
	pdf          *export.PDFExporter
	files        *storage.LocalStorage
	signer       *storage.SignedURLSigner
	logger       *zap.Logger
	retention    time.Duration
}

// NewExportService instantiates ExportService.
func NewExportService(availability *AvailabilityService, files *storage.LocalStorage, signer *storage.SignedURLSigner, logger *zap.Logger, retention time.Duration) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &ExportService{
		availability: availability,
		csv:          export.NewCSVExporter(),
		pdf:          export.NewPDFExporter(),
		files:        files,
		signer:       signer,
		logger:       logger,
		retention:    retention,
	}
}

// Export renders the mentor's stored weekly schedule in the requested format.
func (s *ExportService) Export(ctx context.Context, mentorID string, format ExportFormat) (*ExportResult, error) {
	if format != ExportCSV && format != ExportPDF {
		return nil, appErrors.Validation([]string{"format must be csv or pdf"})
	}

	current, err := s.availability.Get(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if current.Schedule == nil {
		return nil, appErrors.Validation([]string{"no schedule exists to export"})
	}

	dataset := scheduleDataset(current.WeeklyPatterns)

	var content []byte
	switch format {
	case ExportCSV:
		content, err = s.csv.Render(dataset)
	case ExportPDF:
		subtitle := fmt.Sprintf("Timezone: %s", current.Schedule.Timezone)
		content, err = s.pdf.Render(dataset, "Weekly Availability", subtitle)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	if removed, err := s.files.CleanupOlderThan(s.retention); err != nil {
		s.logger.Warn("export cleanup failed", zap.Error(err))
	} else if len(removed) > 0 {
		s.logger.Info("expired exports removed", zap.Int("count", len(removed)))
	}

	exportID := uuid.NewString()
	fileName := fmt.Sprintf("availability-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	relPath := filepath.Join(mentorID, exportID+"-"+fileName)
	if _, err := s.files.Save(relPath, content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export url")
	}

	s.logger.Info("schedule exported",
		zap.String("mentor_id", mentorID),
		zap.String("export_id", exportID),
		zap.String("format", string(format)))

	return &ExportResult{
		ExportID:      exportID,
		Format:        string(format),
		FileName:      fileName,
		DownloadToken: token,
		ExpiresAt:     expiresAt,
	}, nil
}

// Download validates a signed token and opens the referenced export file.
// The caller owns the returned handle.
func (s *ExportService) Download(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}
	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export file not found")
	}
	return file, filepath.Base(relPath), nil
}

func scheduleDataset(patterns []models.WeeklyPattern) export.Dataset {
	headers := []string{"Day", "Enabled", "Start", "End", "Type", "Capacity"}
	rows := make([]map[string]string, 0, len(patterns))
	for _, pattern := range patterns {
		day := time.Weekday(pattern.DayOfWeek).String()
		if len(pattern.TimeBlocks) == 0 {
			rows = append(rows, map[string]string{
				"Day":     day,
				"Enabled": strconv.FormatBool(pattern.IsEnabled),
			})
			continue
		}
		for _, block := range pattern.TimeBlocks {
			rows = append(rows, map[string]string{
				"Day":      day,
				"Enabled":  strconv.FormatBool(pattern.IsEnabled),
				"Start":    block.StartTime,
				"End":      block.EndTime,
				"Type":     string(block.Type),
				"Capacity": strconv.Itoa(block.Capacity()),
			})
		}
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

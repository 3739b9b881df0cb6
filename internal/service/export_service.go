package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/export"
)

// MarkExportLimits bounds a single export, which may exceed a listing page.
var MarkExportLimits = models.PageLimits{DefaultCount: 500, MaxCount: 5000, MaxOffset: 10000}

var errUnknownExportFormat = appErrors.WithField(appErrors.Clone(appErrors.ErrBadRequest, "Неподдерживаемый формат выгрузки"), "format")

// ExportFormat is the closed set of export encodings.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

type markLister interface {
	List(ctx context.Context, filter models.MarkFilter) ([]models.Mark, error)
}

type datasetWriter interface {
	Write(w io.Writer, data export.Dataset) error
	ContentType() string
	Extension() string
}

// ExportResult is a rendered export ready to be sent.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders mark listings as downloadable files.
type ExportService struct {
	marks   markLister
	writers map[ExportFormat]datasetWriter
	logger  *zap.Logger
	metrics *MetricsService
	now     func() time.Time
}

// NewExportService constructs an ExportService with the CSV and PDF writers.
func NewExportService(marks markLister, logger *zap.Logger, metrics *MetricsService) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		marks: marks,
		writers: map[ExportFormat]datasetWriter{
			ExportCSV: export.NewCSVExporter(),
			ExportPDF: export.NewPDFExporter(),
		},
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// ExportMarks renders the marks matching filter in the requested format.
func (s *ExportService) ExportMarks(ctx context.Context, filter models.MarkFilter, page models.PageRequest, format ExportFormat) (*ExportResult, error) {
	if format == "" {
		format = ExportCSV
	}
	writer, ok := s.writers[format]
	if !ok {
		return nil, errUnknownExportFormat
	}

	filter.Count, filter.Offset = MarkExportLimits.Clamp(page.Count, page.Offset)
	start := time.Now()
	marks, err := s.marks.List(ctx, filter)
	s.metrics.ObserveDBQuery("marks_export", time.Since(start))
	if err != nil {
		return nil, storeError(err, nil, nil)
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, marksDataset(marks)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Info("marks exported", zap.String("format", string(format)), zap.Int("rows", len(marks)))
	return &ExportResult{
		Filename:    fmt.Sprintf("marks-%s.%s", s.now().UTC().Format("20060102-150405"), writer.Extension()),
		ContentType: writer.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

func marksDataset(marks []models.Mark) export.Dataset {
	data := export.Dataset{
		Title:   "Marks",
		Headers: []string{"ID", "Student", "Subject", "Teacher", "Mark", "Time"},
		Rows:    make([][]string, 0, len(marks)),
	}
	for _, m := range marks {
		data.Rows = append(data.Rows, []string{
			strconv.FormatInt(m.ID, 10),
			strconv.FormatInt(m.StudentID, 10),
			strconv.FormatInt(m.SubjectID, 10),
			strconv.FormatInt(m.TeacherID, 10),
			strconv.Itoa(int(m.Mark)),
			m.Time.UTC().Format(time.RFC3339),
		})
	}
	return data
}

package slips

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/slipdesk/backend/internal/domain/shared"
	"github.com/slipdesk/backend/internal/domain/slip"
	"github.com/slipdesk/backend/internal/infrastructure/ingest"
)

const previewSampleRows = 5

// ImageIndexer provides the SKU to image URL lookup for aggregation.
// This decouples ProcessService from the image catalog service.
type ImageIndexer interface {
	Index(ctx context.Context) (map[string]string, error)
}

// rowSource is the common surface of the CSV and XLSX parsers
type rowSource interface {
	ParseHeader() error
	Headers() []string
	ReadAllRows() ([]*ingest.Row, error)
}

// ProcessService turns uploaded order exports into packing slip documents
// and keeps the mapping presets and import history around them.
type ProcessService struct {
	presetRepo slip.MappingPresetRepository
	recordRepo slip.ImportRecordRepository
	images     ImageIndexer
	logger     *zap.Logger
}

// NewProcessService creates a new ProcessService
func NewProcessService(
	presetRepo slip.MappingPresetRepository,
	recordRepo slip.ImportRecordRepository,
	images ImageIndexer,
	logger *zap.Logger,
) *ProcessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessService{
		presetRepo: presetRepo,
		recordRepo: recordRepo,
		images:     images,
		logger:     logger,
	}
}

// parserFor picks a parser by file extension
func (s *ProcessService) parserFor(req ProcessRequest, r io.Reader) (rowSource, error) {
	switch strings.ToLower(filepath.Ext(req.Filename)) {
	case ".csv", ".txt":
		opts := []ingest.ParserOption{}
		if req.Charset != "" {
			opts = append(opts, ingest.WithCharset(req.Charset))
		}
		if req.Delimiter != 0 {
			opts = append(opts, ingest.WithDelimiter(req.Delimiter))
		}
		return ingest.NewCSVParser(r, opts...)
	case ".xlsx":
		return ingest.NewXLSXParser(r)
	default:
		return nil, fmt.Errorf("%w: %s", ingest.ErrUnsupportedFormat, req.Filename)
	}
}

// Preview parses a file far enough to show the user what processing would
// do with it: the headers, the automatically resolved mapping, and the
// first few rows.
func (s *ProcessService) Preview(ctx context.Context, req ProcessRequest, r io.Reader) (*PreviewResponse, error) {
	parser, err := s.parserFor(req, r)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}

	headers := parser.Headers()
	mapping := ResolveColumnMapping(headers, req.Mapping)

	samples := make([]map[string]string, 0, previewSampleRows)
	for _, row := range rows {
		if len(samples) == previewSampleRows {
			break
		}
		samples = append(samples, row.Values)
	}

	return &PreviewResponse{
		Headers:     headers,
		Mapping:     toMappingResponse(mapping),
		Marketplace: IsMarketplaceExport(headers),
		SampleRows:  samples,
		TotalRows:   len(rows),
	}, nil
}

// Process runs the whole pipeline on one uploaded file: parse, resolve the
// column mapping, aggregate rows into packing slip documents, and record
// the run in the import history. A failed run is recorded too.
func (s *ProcessService) Process(ctx context.Context, req ProcessRequest, r io.Reader) (*ProcessResponse, error) {
	mapping := req.Mapping
	if req.PresetName != "" {
		preset, err := s.presetRepo.FindByName(ctx, req.PresetName)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Mapping preset not found")
			}
			return nil, fmt.Errorf("failed to load preset: %w", err)
		}
		mapping = preset.Mapping
	}

	parser, err := s.parserFor(req, r)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}

	resolved := ResolveColumnMapping(parser.Headers(), mapping)

	skuImages := map[string]string{}
	if s.images != nil {
		skuImages, err = s.images.Index(ctx)
		if err != nil {
			return nil, err
		}
	}

	docs, stats, err := Aggregate(rows, resolved, skuImages)
	if err != nil {
		s.recordFailure(ctx, req.Filename, len(rows), err)
		return nil, err
	}

	record := slip.NewImportRecord(req.Filename, stats.TotalRows, stats.ProcessedRows,
		stats.SkippedRows, stats.DocumentCount)
	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save import record: %w", err)
	}

	s.logger.Info("order export processed",
		zap.String("filename", req.Filename),
		zap.Int("rows", stats.TotalRows),
		zap.Int("documents", stats.DocumentCount),
		zap.Int("skipped", stats.SkippedRows))

	return &ProcessResponse{
		Documents: docs,
		Stats:     stats,
		Mapping:   toMappingResponse(resolved),
		RecordID:  record.ID.String(),
	}, nil
}

func (s *ProcessService) recordFailure(ctx context.Context, filename string, totalRows int, cause error) {
	record := slip.NewFailedImportRecord(filename, totalRows, cause.Error())
	if err := s.recordRepo.Save(ctx, record); err != nil {
		s.logger.Warn("failed to save failed import record",
			zap.String("filename", filename),
			zap.Error(err))
	}
}

// ExportCSV writes the aggregated documents back out as a flat CSV
func (s *ProcessService) ExportCSV(w io.Writer, docs []*slip.Document) error {
	return ExportCSV(w, docs)
}

// CreatePreset saves a column mapping under a name
func (s *ProcessService) CreatePreset(ctx context.Context, req CreatePresetRequest) (*PresetResponse, error) {
	existing, err := s.presetRepo.FindByName(ctx, strings.TrimSpace(req.Name))
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check preset existence: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A preset with this name already exists")
	}

	preset, err := slip.NewMappingPreset(req.Name, MappingFromRequest(req.Mapping))
	if err != nil {
		return nil, err
	}

	if err := s.presetRepo.Save(ctx, preset); err != nil {
		return nil, fmt.Errorf("failed to save preset: %w", err)
	}

	s.logger.Info("mapping preset created",
		zap.String("id", preset.ID.String()),
		zap.String("name", preset.Name))

	return toPresetResponse(preset), nil
}

// GetPreset retrieves a preset by ID
func (s *ProcessService) GetPreset(ctx context.Context, id uuid.UUID) (*PresetResponse, error) {
	preset, err := s.presetRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Mapping preset not found")
		}
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}
	return toPresetResponse(preset), nil
}

// ListPresets returns all saved presets
func (s *ProcessService) ListPresets(ctx context.Context) ([]PresetResponse, error) {
	presets, err := s.presetRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}

	items := make([]PresetResponse, len(presets))
	for i := range presets {
		items[i] = *toPresetResponse(&presets[i])
	}
	return items, nil
}

// UpdatePreset replaces the mapping of an existing preset
func (s *ProcessService) UpdatePreset(ctx context.Context, id uuid.UUID, req UpdatePresetRequest) (*PresetResponse, error) {
	preset, err := s.presetRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Mapping preset not found")
		}
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}

	if err := preset.UpdateMapping(MappingFromRequest(req.Mapping)); err != nil {
		return nil, err
	}

	if err := s.presetRepo.Save(ctx, preset); err != nil {
		return nil, fmt.Errorf("failed to save preset: %w", err)
	}
	return toPresetResponse(preset), nil
}

// DeletePreset removes a preset
func (s *ProcessService) DeletePreset(ctx context.Context, id uuid.UUID) error {
	if err := s.presetRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Mapping preset not found")
		}
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	return nil
}

// History returns the most recent import records, newest first
func (s *ProcessService) History(ctx context.Context, limit int) ([]ImportRecordResponse, error) {
	records, err := s.recordRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import history: %w", err)
	}

	items := make([]ImportRecordResponse, len(records))
	for i := range records {
		items[i] = *toImportRecordResponse(&records[i])
	}
	return items, nil
}

// DeleteHistoryRecord removes one import record
func (s *ProcessService) DeleteHistoryRecord(ctx context.Context, id uuid.UUID) error {
	if err := s.recordRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Import record not found")
		}
		return fmt.Errorf("failed to delete import record: %w", err)
	}
	return nil
}

package printing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/slipdesk/backend/internal/domain/printing"
	"github.com/slipdesk/backend/internal/domain/shared"
	"github.com/slipdesk/backend/internal/domain/slip"
	infra "github.com/slipdesk/backend/internal/infrastructure/printing"
)

// PrintService manages slip templates and turns aggregated packing slip
// documents into stored PDFs.
type PrintService struct {
	templateRepo   printing.SlipTemplateRepository
	templateEngine *infra.TemplateEngine
	pdfRenderer    infra.PDFRenderer
	pdfStorage     infra.PDFStorage
	logger         *zap.Logger
}

// NewPrintService creates a new PrintService
func NewPrintService(
	templateRepo printing.SlipTemplateRepository,
	templateEngine *infra.TemplateEngine,
	pdfRenderer infra.PDFRenderer,
	pdfStorage infra.PDFStorage,
	logger *zap.Logger,
) *PrintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrintService{
		templateRepo:   templateRepo,
		templateEngine: templateEngine,
		pdfRenderer:    pdfRenderer,
		pdfStorage:     pdfStorage,
		logger:         logger,
	}
}

// SeedDefaults installs the built-in templates when they are not present
// yet. Existing templates with the same name are left untouched.
func (s *PrintService) SeedDefaults(ctx context.Context) error {
	for _, def := range infra.GetDefaultTemplates() {
		existing, err := s.templateRepo.FindByName(ctx, def.Name)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("failed to check template %q: %w", def.Name, err)
		}
		if existing != nil {
			continue
		}

		tmpl, err := infra.BuildDefaultTemplate(def)
		if err != nil {
			return err
		}
		if err := s.templateRepo.Save(ctx, tmpl); err != nil {
			return fmt.Errorf("failed to save template %q: %w", def.Name, err)
		}
		s.logger.Info("installed built-in slip template", zap.String("name", def.Name))
	}
	return nil
}

// CreateTemplate creates a new slip template
func (s *PrintService) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*TemplateResponse, error) {
	existing, err := s.templateRepo.FindByName(ctx, strings.TrimSpace(req.Name))
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check template existence: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A template with this name already exists")
	}

	paperSize := printing.PaperSize(req.PaperSize)
	if !paperSize.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid paper size")
	}

	template, err := printing.NewSlipTemplate(req.Name, req.Content, paperSize)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := template.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.CSS != "" {
		if err := template.UpdateContent(req.Content, req.CSS); err != nil {
			return nil, err
		}
	}
	if req.Orientation != "" {
		if err := template.SetOrientation(printing.Orientation(req.Orientation)); err != nil {
			return nil, err
		}
	}
	if req.Margins != nil {
		margins := printing.Margins{
			Top:    req.Margins.Top,
			Right:  req.Margins.Right,
			Bottom: req.Margins.Bottom,
			Left:   req.Margins.Left,
		}
		if err := template.SetMargins(margins); err != nil {
			return nil, err
		}
	}

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.logger.Info("slip template created",
		zap.String("id", template.ID.String()),
		zap.String("name", template.Name))

	return toTemplateResponse(template), nil
}

// GetTemplate retrieves a template by ID
func (s *PrintService) GetTemplate(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	template, err := s.findTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// ListTemplates returns all templates, default first
func (s *PrintService) ListTemplates(ctx context.Context) (*ListTemplatesResponse, error) {
	templates, err := s.templateRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	items := make([]TemplateResponse, len(templates))
	for i := range templates {
		items[i] = *toTemplateResponse(&templates[i])
	}
	return &ListTemplatesResponse{Items: items, Total: len(items)}, nil
}

// UpdateTemplate updates an existing template
func (s *PrintService) UpdateTemplate(ctx context.Context, id uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	template, err := s.findTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" || req.Description != "" {
		name := req.Name
		if name == "" {
			name = template.Name
		}
		description := req.Description
		if description == "" {
			description = template.Description
		}
		if err := template.Update(name, description); err != nil {
			return nil, err
		}
	}
	if req.Content != "" {
		if err := template.UpdateContent(req.Content, req.CSS); err != nil {
			return nil, err
		}
	}
	if req.PaperSize != "" {
		if err := template.SetPaperSize(printing.PaperSize(req.PaperSize)); err != nil {
			return nil, err
		}
	}
	if req.Orientation != "" {
		if err := template.SetOrientation(printing.Orientation(req.Orientation)); err != nil {
			return nil, err
		}
	}
	if req.Margins != nil {
		margins := printing.Margins{
			Top:    req.Margins.Top,
			Right:  req.Margins.Right,
			Bottom: req.Margins.Bottom,
			Left:   req.Margins.Left,
		}
		if err := template.SetMargins(margins); err != nil {
			return nil, err
		}
	}

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}
	return toTemplateResponse(template), nil
}

// SetDefaultTemplate marks one template as the default for generation
func (s *PrintService) SetDefaultTemplate(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	template, err := s.findTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if !template.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Inactive template cannot be the default")
	}

	if err := s.templateRepo.ClearDefault(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear default template: %w", err)
	}

	template.MarkDefault()
	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}
	return toTemplateResponse(template), nil
}

// DeleteTemplate removes a template
func (s *PrintService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	template, err := s.findTemplate(ctx, id)
	if err != nil {
		return err
	}
	if template.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "The default template cannot be deleted")
	}

	if err := s.templateRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

func (s *PrintService) findTemplate(ctx context.Context, id uuid.UUID) (*printing.SlipTemplate, error) {
	template, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Template not found")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}

// pickTemplate resolves the template to generate with: the requested one,
// else the stored default, else the built-in default.
func (s *PrintService) pickTemplate(ctx context.Context, templateID *uuid.UUID) (*printing.SlipTemplate, error) {
	if templateID != nil {
		template, err := s.findTemplate(ctx, *templateID)
		if err != nil {
			return nil, err
		}
		if !template.IsActive() {
			return nil, shared.NewDomainError("INVALID_STATE", "Template is not active")
		}
		return template, nil
	}

	template, err := s.templateRepo.FindDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load default template: %w", err)
	}
	if template != nil {
		return template, nil
	}

	for _, def := range infra.GetDefaultTemplates() {
		if def.IsDefault {
			return infra.BuildDefaultTemplate(def)
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "No template available for generation")
}

// GeneratePDF renders a batch of packing slip documents into one PDF, one
// slip per page, and stores it.
func (s *PrintService) GeneratePDF(ctx context.Context, docs []*slip.Document, templateID *uuid.UUID) (*GenerateResponse, error) {
	if len(docs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "No documents to generate")
	}

	template, err := s.pickTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	var pages strings.Builder
	for i, doc := range docs {
		result, err := s.templateEngine.Render(ctx, &infra.RenderTemplateRequest{
			Template: template,
			Data:     doc,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to render document %d: %w", i+1, err)
		}

		if i > 0 {
			pages.WriteString(`<div style="page-break-before: always;"></div>`)
		}
		pages.WriteString(result.HTML)
	}

	renderResult, err := s.pdfRenderer.Render(ctx, &infra.RenderRequest{
		HTML:        pages.String(),
		PaperSize:   template.PaperSize,
		Orientation: template.Orientation,
		Margins:     template.Margins,
		Title:       "Packing Slips",
	})
	if err != nil {
		return nil, err
	}

	batchID := uuid.New()
	storeResult, err := s.pdfStorage.Store(ctx, &infra.StoreRequest{
		BatchID: batchID,
		PDFData: renderResult.PDFData,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("packing slip PDF generated",
		zap.String("batchId", batchID.String()),
		zap.Int("documents", len(docs)),
		zap.Int("pages", renderResult.PageCount),
		zap.Int64("bytes", storeResult.Size))

	return &GenerateResponse{
		BatchID:       batchID.String(),
		URL:           storeResult.URL,
		Size:          storeResult.Size,
		PageCount:     renderResult.PageCount,
		DocumentCount: len(docs),
	}, nil
}

// FetchPDF returns a reader for a stored PDF by its relative path
func (s *PrintService) FetchPDF(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.pdfStorage.Get(ctx, path)
}

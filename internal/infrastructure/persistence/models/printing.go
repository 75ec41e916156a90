package models

import (
	"github.com/slipdesk/backend/internal/domain/printing"
)

// SlipTemplateModel is the GORM model for the slip_templates table
type SlipTemplateModel struct {
	BaseModel
	Name         string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_slip_templates_name"`
	Description  string  `gorm:"type:text"`
	Content      string  `gorm:"type:text;not null"`
	CSS          string  `gorm:"column:css;type:text"`
	PaperSize    string  `gorm:"column:paper_size;type:varchar(20);not null;default:'A4'"`
	Orientation  string  `gorm:"type:varchar(20);not null;default:'PORTRAIT'"`
	MarginTop    float64 `gorm:"column:margin_top;not null;default:10"`
	MarginRight  float64 `gorm:"column:margin_right;not null;default:10"`
	MarginBottom float64 `gorm:"column:margin_bottom;not null;default:10"`
	MarginLeft   float64 `gorm:"column:margin_left;not null;default:10"`
	IsDefault    bool    `gorm:"column:is_default;not null;default:false"`
	Status       string  `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for SlipTemplateModel
func (SlipTemplateModel) TableName() string {
	return "slip_templates"
}

// ToDomain converts SlipTemplateModel to domain SlipTemplate
func (m *SlipTemplateModel) ToDomain() *printing.SlipTemplate {
	return &printing.SlipTemplate{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		Content:     m.Content,
		CSS:         m.CSS,
		PaperSize:   printing.PaperSize(m.PaperSize),
		Orientation: printing.Orientation(m.Orientation),
		Margins: printing.Margins{
			Top:    m.MarginTop,
			Right:  m.MarginRight,
			Bottom: m.MarginBottom,
			Left:   m.MarginLeft,
		},
		IsDefault: m.IsDefault,
		Status:    printing.TemplateStatus(m.Status),
	}
}

// SlipTemplateModelFromDomain creates a SlipTemplateModel from domain SlipTemplate
func SlipTemplateModelFromDomain(t *printing.SlipTemplate) *SlipTemplateModel {
	model := &SlipTemplateModel{
		Name:         t.Name,
		Description:  t.Description,
		Content:      t.Content,
		CSS:          t.CSS,
		PaperSize:    string(t.PaperSize),
		Orientation:  string(t.Orientation),
		MarginTop:    t.Margins.Top,
		MarginRight:  t.Margins.Right,
		MarginBottom: t.Margins.Bottom,
		MarginLeft:   t.Margins.Left,
		IsDefault:    t.IsDefault,
		Status:       string(t.Status),
	}
	model.FromDomainBaseEntity(t.BaseEntity)
	return model
}

package services

import (
	"errors"

	"avquotes-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTemplateNotFound = errors.New("template not found")

// AppliedTemplate is handed back to the caller after a template is applied:
// the services and labor arrays are for the caller to materialize as new
// room children, the tax settings have already been written onto the quote.
type AppliedTemplate struct {
	Services    models.JSONBArray `json:"services"`
	Labor       models.JSONBArray `json:"labor"`
	TaxSettings models.JSONB      `json:"tax_settings"`
}

// TemplateService copies a stored service/labor/tax bundle onto a quote.
// It never reads or touches the quote's existing rooms.
type TemplateService struct {
	db       *gorm.DB
	versions *VersionService
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db, versions: NewVersionService(db)}
}

// Apply overwrites the quote's tax rate and enablement from the template's
// stored tax settings (0/false when absent) through the usual versioned
// update path, and returns the template's services and labor arrays.
func (s *TemplateService) Apply(quoteID, templateID, authorID uuid.UUID) (*AppliedTemplate, error) {
	var template models.Template
	if err := s.db.First(&template, "id = ?", templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	taxRate := 0.0
	taxEnabled := false
	if v, ok := template.TaxSettings["tax_rate"].(float64); ok {
		taxRate = v
	}
	if v, ok := template.TaxSettings["tax_enabled"].(bool); ok {
		taxEnabled = v
	}

	err := s.versions.SnapshotAndUpdate(quoteID, authorID, map[string]interface{}{
		"tax_rate":    taxRate,
		"tax_enabled": taxEnabled,
	})
	if err != nil {
		return nil, err
	}

	return &AppliedTemplate{
		Services:    template.Services,
		Labor:       template.Labor,
		TaxSettings: template.TaxSettings,
	}, nil
}

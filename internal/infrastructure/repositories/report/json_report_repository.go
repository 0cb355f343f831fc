package report

import (
	"encoding/json"
	"io"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/domain/repositories"
)

const jsonName = "json"

// JSONReportRepository writes the report as indented JSON.
type JSONReportRepository struct{}

// NewJSONReportRepository creates the JSON report format.
func NewJSONReportRepository() repositories.ReportRepository {
	return &JSONReportRepository{}
}

func (r *JSONReportRepository) Name() string { return jsonName }

// Export writes the report as JSON.
func (r *JSONReportRepository) Export(w io.Writer, report *entities.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

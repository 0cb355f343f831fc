package repositories

import (
	"io"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
)

// ReportRepository writes a changelog report in one output format.
type ReportRepository interface {
	// Name returns the format identifier (e.g. "markdown", "json").
	Name() string

	Export(w io.Writer, report *entities.Report) error
}

package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/domain/repositories"
)

const (
	xlsxName          = "xlsx"
	defaultSheet      = "Sheet1"
	contributorsSheet = "Contributors"
	modulesSheet      = "Modules"
)

// XLSXReportRepository writes the contributor table and the module list as a
// spreadsheet with one sheet each.
type XLSXReportRepository struct{}

// NewXLSXReportRepository creates the spreadsheet report format.
func NewXLSXReportRepository() repositories.ReportRepository {
	return &XLSXReportRepository{}
}

func (r *XLSXReportRepository) Name() string { return xlsxName }

// Export writes the report as an .xlsx workbook.
func (r *XLSXReportRepository) Export(w io.Writer, report *entities.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, contributorsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	contributors := [][]any{{"Author", "Commits", "Insertions", "Deletions", "Lines", "Files"}}
	for _, c := range report.Contributors {
		contributors = append(contributors, []any{c.Author, c.Commits, c.Insertions, c.Deletions, c.Lines, c.Files})
	}
	if err := writeRows(f, contributorsSheet, contributors); err != nil {
		return err
	}

	if _, err := f.NewSheet(modulesSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	modules := [][]any{{"Module", "Old", "New", "Changes", "Failure"}}
	for _, m := range report.Modules {
		modules = append(modules, []any{m.Path, m.OldVersion, m.NewVersion, len(m.Entries), m.Failure})
	}
	if err := writeRows(f, modulesSheet, modules); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

//go:build unit

package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/infrastructure/repositories/report"
)

func sampleReport() *entities.Report {
	return &entities.Report{
		Module: "github.com/acme/app",
		Start:  "v1.0.0",
		End:    "abc1234",
		Modules: []entities.ModuleChangelog{
			{
				Path:       "github.com/acme/app",
				OldVersion: "v1.0.0",
				NewVersion: "abc1234",
				Root:       true,
				Entries: []entities.ChangeEntry{
					{Hash: "1", Description: "Add retries", PullRequest: 4, Link: "[acme/app#4](https://github.com/acme/app/pull/4)"},
					{Hash: "2", Description: "fix typo"},
				},
			},
			{
				Path:       "github.com/acme/lib",
				OldVersion: "v1.0.0",
				NewVersion: "v1.1.0",
				Entries:    []entities.ChangeEntry{{Hash: "3", Description: "speed up parser"}},
			},
			{
				Path:       "github.com/acme/gone",
				OldVersion: "v0.1.0",
				NewVersion: "v0.2.0",
				Failure:    "fetch failure: connection refused",
			},
		},
		Contributors: []entities.AuthorSummary{
			{Author: "Alice", Commits: 2, Insertions: 10, Deletions: 4, Files: 3, Lines: 14},
			{Author: "Bob|Builder", Commits: 1, Insertions: 5, Files: 1, Lines: 5},
		},
	}
}

func TestMarkdownReportRepository_Export(t *testing.T) {
	t.Parallel()

	t.Run("should render the modules and the contributor table", func(t *testing.T) {
		t.Parallel()

		// given
		var buf bytes.Buffer
		exporter := report.NewMarkdownReportRepository()

		// when
		err := exporter.Export(&buf, sampleReport())

		// then
		require.NoError(t, err)
		assert.Equal(t, "markdown", exporter.Name())
		assert.Equal(t, `- github.com/acme/app:
  - Add retries ([acme/app#4](https://github.com/acme/app/pull/4))
  - fix typo
- github.com/acme/lib (v1.0.0 -> v1.1.0):
  - speed up parser
- github.com/acme/gone (v0.1.0 -> v0.2.0):
  - (failed to collect changes: fetch failure: connection refused)

Contributors

| Author | Commits | +Insertions/-Deletions | Files |
|--------|---------|------------------------|-------|
| Alice | 2 | +10/-4 | 3 |
| Bob\|Builder | 1 | +5/-0 | 1 |
`, buf.String())
	})
}

func TestJSONReportRepository_Export(t *testing.T) {
	t.Parallel()

	t.Run("should encode the whole report", func(t *testing.T) {
		t.Parallel()

		// given
		var buf bytes.Buffer
		exporter := report.NewJSONReportRepository()

		// when
		err := exporter.Export(&buf, sampleReport())

		// then
		require.NoError(t, err)
		assert.Equal(t, "json", exporter.Name())

		var decoded entities.Report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "github.com/acme/app", decoded.Module)
		require.Len(t, decoded.Modules, 3)
		assert.Equal(t, "fetch failure: connection refused", decoded.Modules[2].Failure)
		assert.Equal(t, 4, decoded.Modules[0].Entries[0].PullRequest)
		assert.Equal(t, 14, decoded.Contributors[0].Lines)
	})

	t.Run("should encode an empty entry list for a failed module", func(t *testing.T) {
		t.Parallel()

		// given
		var buf bytes.Buffer
		failed := entities.NewFailedModuleResult(
			entities.DependencyDelta{Path: "github.com/acme/gone", OldVersion: "v0.1.0", NewVersion: "v0.2.0"},
			errors.New("connection refused"),
		)
		input := entities.NewReport("github.com/acme/app", "v1.0.0", "HEAD", []entities.ModuleResult{failed}, nil)

		// when
		err := report.NewJSONReportRepository().Export(&buf, input)

		// then
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"entries": []`)
		assert.NotContains(t, buf.String(), `"entries": null`)
	})
}

func TestXLSXReportRepository_Export(t *testing.T) {
	t.Parallel()

	t.Run("should write one sheet for contributors and one for modules", func(t *testing.T) {
		t.Parallel()

		// given
		var buf bytes.Buffer
		exporter := report.NewXLSXReportRepository()

		// when
		err := exporter.Export(&buf, sampleReport())

		// then
		require.NoError(t, err)
		assert.Equal(t, "xlsx", exporter.Name())

		workbook, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer workbook.Close()

		contributors, err := workbook.GetRows("Contributors")
		require.NoError(t, err)
		require.Len(t, contributors, 3)
		assert.Equal(t, []string{"Author", "Commits", "Insertions", "Deletions", "Lines", "Files"}, contributors[0])
		assert.Equal(t, []string{"Alice", "2", "10", "4", "14", "3"}, contributors[1])

		modules, err := workbook.GetRows("Modules")
		require.NoError(t, err)
		require.Len(t, modules, 4)
		assert.Equal(t, []string{"github.com/acme/lib", "v1.0.0", "v1.1.0", "1"}, modules[2])
		assert.Equal(t, "fetch failure: connection refused", modules[3][4])
	})
}

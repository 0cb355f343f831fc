package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/domain/repositories"
)

const (
	markdownName = "markdown"
	indent       = "  "
)

// MarkdownReportRepository renders the changelog as a nested bullet list followed
// by the contributor table.
type MarkdownReportRepository struct{}

// NewMarkdownReportRepository creates the markdown report format.
func NewMarkdownReportRepository() repositories.ReportRepository {
	return &MarkdownReportRepository{}
}

func (r *MarkdownReportRepository) Name() string { return markdownName }

// Export writes the report as Markdown.
func (r *MarkdownReportRepository) Export(w io.Writer, report *entities.Report) error {
	var sb strings.Builder

	for _, module := range report.Modules {
		fmt.Fprintf(&sb, "- %s:\n", module.Heading())
		if module.Failed() {
			fmt.Fprintf(&sb, "%s- (failed to collect changes: %s)\n", indent, module.Failure)
			continue
		}
		for _, entry := range module.Entries {
			fmt.Fprintf(&sb, "%s- %s\n", indent, entry)
		}
	}

	sb.WriteString("\nContributors\n\n")
	sb.WriteString("| Author | Commits | +Insertions/-Deletions | Files |\n")
	sb.WriteString("|--------|---------|------------------------|-------|\n")
	for _, c := range report.Contributors {
		fmt.Fprintf(&sb, "| %s | %d | +%d/-%d | %d |\n",
			escapeCell(c.Author), c.Commits, c.Insertions, c.Deletions, c.Files)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// escapeCell keeps an author name from breaking the table layout.
func escapeCell(text string) string {
	return strings.ReplaceAll(text, "|", `\|`)
}

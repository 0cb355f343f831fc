package entities

// Report is the outcome of one changelog run.
type Report struct {
	Module       string            `json:"module"`
	Start        string            `json:"start"`
	End          string            `json:"end"`
	Modules      []ModuleChangelog `json:"modules"`
	Contributors []AuthorSummary   `json:"contributors"`
	Warnings     []string          `json:"warnings,omitempty"`
}

// NewReport assembles a report from the per-module results of a run. The statistics
// of every successful module are merged and aggregated into the contributor table;
// failed modules keep their placeholder section and add a warning.
func NewReport(module, start, end string, results []ModuleResult, warnings []string) *Report {
	report := &Report{
		Module:   module,
		Start:    start,
		End:      end,
		Modules:  make([]ModuleChangelog, 0, len(results)),
		Warnings: append([]string{}, warnings...),
	}

	var stats StatLog
	for _, result := range results {
		report.Modules = append(report.Modules, result.Changelog)
		if result.Err != nil {
			report.Warnings = append(report.Warnings, result.Changelog.Path+": "+result.Err.Error())
			continue
		}
		stats = stats.Merge(result.Stats)
	}

	report.Contributors = AggregateContributions(stats)
	return report
}

// Failures returns the modules whose history could not be collected.
func (r *Report) Failures() []ModuleChangelog {
	var failed []ModuleChangelog
	for _, m := range r.Modules {
		if m.Failed() {
			failed = append(failed, m)
		}
	}
	return failed
}

package repositories

import (
	"fmt"
	"sort"

	domainRepos "github.com/rios0rios0/releaselog/internal/domain/repositories"
)

// ReportRegistry manages all registered report output formats.
type ReportRegistry struct {
	formats map[string]domainRepos.ReportRepository
}

// NewReportRegistry creates an empty report registry.
func NewReportRegistry() *ReportRegistry {
	return &ReportRegistry{
		formats: make(map[string]domainRepos.ReportRepository),
	}
}

// Register adds a report format under its name.
func (r *ReportRegistry) Register(f domainRepos.ReportRepository) {
	r.formats[f.Name()] = f
}

// Get returns the report format with the given name.
func (r *ReportRegistry) Get(name string) (domainRepos.ReportRepository, error) {
	f, ok := r.formats[name]
	if !ok {
		return nil, fmt.Errorf("unknown report format: %q (available: %v)", name, r.Names())
	}
	return f, nil
}

// Names returns the sorted list of registered format names.
func (r *ReportRegistry) Names() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package repositories

import (
	gitRepo "github.com/rios0rios0/releaselog/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/releaselog/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/releaselog/internal/infrastructure/repositories/gitlab"
	goRepo "github.com/rios0rios0/releaselog/internal/infrastructure/repositories/golang"
	reportRepo "github.com/rios0rios0/releaselog/internal/infrastructure/repositories/report"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Collaborators of the changelog command
	if err := container.Provide(goRepo.NewManifestRepository); err != nil {
		return err
	}
	if err := container.Provide(gitRepo.NewSourceRepository); err != nil {
		return err
	}
	if err := container.Provide(gitRepo.NewHistoryRepository); err != nil {
		return err
	}

	// Register pull request lookups per Git host
	if err := container.Provide(func() *PullRequestRegistry {
		reg := NewPullRequestRegistry()
		reg.Register("github.com", ghRepo.NewPullRequestRepository)
		reg.Register("gitlab.com", glRepo.NewMergeRequestRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register report formats
	if err := container.Provide(func() *ReportRegistry {
		reg := NewReportRegistry()
		reg.Register(reportRepo.NewMarkdownReportRepository())
		reg.Register(reportRepo.NewJSONReportRepository())
		reg.Register(reportRepo.NewXLSXReportRepository())
		return reg
	}); err != nil {
		return err
	}

	return nil
}

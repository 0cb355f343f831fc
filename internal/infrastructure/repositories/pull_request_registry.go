package repositories

import (
	"fmt"
	"sort"

	domainRepos "github.com/rios0rios0/releaselog/internal/domain/repositories"
)

// PullRequestFactory is a constructor function that creates a PullRequestRepository given an auth token.
type PullRequestFactory func(token string) domainRepos.PullRequestRepository

// PullRequestRegistry manages the pull request lookups of each supported Git host.
type PullRequestRegistry struct {
	hosts map[string]PullRequestFactory
}

// NewPullRequestRegistry creates an empty pull request registry.
func NewPullRequestRegistry() *PullRequestRegistry {
	return &PullRequestRegistry{
		hosts: make(map[string]PullRequestFactory),
	}
}

// Register adds a factory under the given host name (e.g. "github.com").
func (r *PullRequestRegistry) Register(host string, factory PullRequestFactory) {
	r.hosts[host] = factory
}

// Get returns a configured lookup for the given host and token.
func (r *PullRequestRegistry) Get(host, token string) (domainRepos.PullRequestRepository, error) {
	factory, ok := r.hosts[host]
	if !ok {
		return nil, fmt.Errorf("unknown pull request host: %q", host)
	}
	return factory(token), nil
}

// Hosts returns the sorted list of registered host names.
func (r *PullRequestRegistry) Hosts() []string {
	hosts := make([]string, 0, len(r.hosts))
	for host := range r.hosts {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts
}

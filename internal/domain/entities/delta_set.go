package entities

// DeltaSet is the outcome of comparing the manifests of a root module at two references.
type DeltaSet struct {
	Module   string            `json:"module"`
	Root     string            `json:"-"`
	Start    string            `json:"start"`
	End      string            `json:"end"`
	Deltas   []DependencyDelta `json:"deltas"`
	Warnings []string          `json:"warnings,omitempty"`
}

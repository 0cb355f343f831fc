package entities

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	logger "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

const defaultTimeout = 5 * time.Minute

// Settings is the configuration of a changelog run.
type Settings struct {
	Include     []string      `yaml:"include"`      // Module path regexes to report; empty means all
	Exclude     []string      `yaml:"exclude"`      // Module path regexes never reported
	IgnoreFiles []string      `yaml:"ignore_files"` // File globs left out of stats and changelog
	Workspace   string        `yaml:"workspace"`    // Directory dependency repositories are cloned into
	Timeout     time.Duration `yaml:"timeout"`      // Limit for each fetch or log call
	Mailmap     string        `yaml:"mailmap"`      // Fallback .mailmap for identity normalization
	GitHubToken string        `yaml:"github_token"` // Inline, ${ENV_VAR}, or file path
	GitLabToken string        `yaml:"gitlab_token"` // Inline, ${ENV_VAR}, or file path
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`) //nolint:gochecknoglobals // compiled once

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		IgnoreFiles: []string{"go.mod", "go.sum", "package.json", "package-lock.json", ".gx/*"},
		Workspace:   defaultWorkspace(),
		Timeout:     defaultTimeout,
	}
}

// NewSettings reads a YAML or HCL configuration file on top of the defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		err = decodeHCL(data, path, settings)
	default:
		err = yaml.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	settings.GitHubToken = resolveToken(settings.GitHubToken)
	settings.GitLabToken = resolveToken(settings.GitLabToken)
	settings.Workspace = expandHome(settings.Workspace)
	settings.Mailmap = expandHome(settings.Mailmap)

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".releaselog.yaml",
		".releaselog.yml",
		".releaselog.hcl",
		"releaselog.yaml",
		"releaselog.yml",
		"releaselog.hcl",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// Validate checks that every pattern compiles and the limits are usable.
func (s *Settings) Validate() error {
	if _, err := NewModuleFilter(s.Include, s.Exclude); err != nil {
		return err
	}
	for _, pattern := range s.IgnoreFiles {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid ignore_files pattern %q: %w", pattern, err)
		}
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	if s.Workspace == "" {
		return errors.New("workspace is required")
	}
	return nil
}

// TokenFor returns the API token configured for the Git host.
func (s *Settings) TokenFor(host string) string {
	if host == "gitlab.com" {
		return s.GitLabToken
	}
	return s.GitHubToken
}

// decodeHCL evaluates a flat HCL body. Expressions may read environment
// variables through the "env" object, e.g. github_token = env.GITHUB_TOKEN.
func decodeHCL(data []byte, path string, settings *Settings) error {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return diags
	}

	attrs, attrDiags := file.Body.JustAttributes()
	if attrDiags.HasErrors() {
		return attrDiags
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": environmentObject()},
	}

	for name, attr := range attrs {
		value, valueDiags := attr.Expr.Value(evalCtx)
		if valueDiags.HasErrors() {
			return valueDiags
		}

		var err error
		switch name {
		case "include":
			settings.Include, err = ctyStrings(name, value)
		case "exclude":
			settings.Exclude, err = ctyStrings(name, value)
		case "ignore_files":
			settings.IgnoreFiles, err = ctyStrings(name, value)
		case "workspace":
			settings.Workspace, err = ctyString(name, value)
		case "mailmap":
			settings.Mailmap, err = ctyString(name, value)
		case "github_token":
			settings.GitHubToken, err = ctyString(name, value)
		case "gitlab_token":
			settings.GitLabToken, err = ctyString(name, value)
		case "timeout":
			var raw string
			if raw, err = ctyString(name, value); err == nil {
				settings.Timeout, err = time.ParseDuration(raw)
			}
		default:
			err = fmt.Errorf("%s: unknown setting %q", attr.NameRange, name)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func environmentObject() cty.Value {
	vars := make(map[string]cty.Value)
	for _, entry := range os.Environ() {
		if key, value, ok := strings.Cut(entry, "="); ok && hclIdentifier(key) {
			vars[key] = cty.StringVal(value)
		}
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}

// hclIdentifier reports whether key can be used as an attribute name after "env.".
func hclIdentifier(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !letter && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func ctyString(name string, value cty.Value) (string, error) {
	if value.IsNull() {
		return "", nil
	}
	if value.Type() != cty.String || !value.IsKnown() {
		return "", fmt.Errorf("setting %q must be a string", name)
	}
	return value.AsString(), nil
}

func ctyStrings(name string, value cty.Value) ([]string, error) {
	if value.IsNull() {
		return nil, nil
	}
	if !value.CanIterateElements() || !(value.Type().IsListType() || value.Type().IsTupleType()) {
		return nil, fmt.Errorf("setting %q must be a list of strings", name)
	}
	result := make([]string, 0, value.LengthInt())
	for _, element := range value.AsValueSlice() {
		s, err := ctyString(name, element)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// defaultWorkspace mirrors the GOPATH source layout: $GOPATH/src, else ~/go/src.
func defaultWorkspace() string {
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		return filepath.Join(filepath.SplitList(gopath)[0], "src")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "releaselog")
	}
	return filepath.Join(homeDir, "go", "src")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}

package golang

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/modfile"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/domain/repositories"
)

const (
	goModFile     = "go.mod"
	stubMainFile  = "main.go"
	stubMain      = "package main\n"
	workspaceMode = 0o600
)

// listedModule is one object of the `go list -m -json` stream.
type listedModule struct {
	Path    string `json:"Path"`
	Version string `json:"Version"`
	Main    bool   `json:"Main"`
}

// ManifestRepository implements repositories.ManifestRepository with the go tool.
// The manifest at a reference is the build list of that reference's go.mod,
// evaluated in a scratch module with every replace directive removed.
type ManifestRepository struct{}

// NewManifestRepository creates a new Go manifest reader.
func NewManifestRepository() repositories.ManifestRepository {
	return &ManifestRepository{}
}

// MainModule returns the module path declared by repoDir/go.mod.
func (r *ManifestRepository) MainModule(_ context.Context, repoDir string) (string, error) {
	content, err := os.ReadFile(filepath.Join(repoDir, goModFile))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	modulePath := modfile.ModulePath(content)
	if modulePath == "" {
		return "", fmt.Errorf("%w: go.mod in %s has no module directive", entities.ErrMalformedManifest, repoDir)
	}
	return modulePath, nil
}

// Snapshot lists every module of the build list at ref.
func (r *ManifestRepository) Snapshot(
	ctx context.Context,
	repoDir, ref string,
) (entities.Snapshot, error) {
	content, err := showFile(ctx, repoDir, ref, goModFile)
	if err != nil {
		return nil, err
	}

	stripped, err := stripReplaces(content)
	if err != nil {
		return nil, err
	}

	listing, err := listModules(ctx, stripped)
	if err != nil {
		return nil, err
	}

	records, err := parseModuleList(bytes.NewReader(listing))
	if err != nil {
		return nil, err
	}
	logger.Debugf("[golang] %d modules in the build list at %s", len(records), ref)

	return entities.NewSnapshot(records)
}

// showFile reads a file as of ref without touching the working tree.
func showFile(ctx context.Context, repoDir, ref, file string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", "show", ref+":"+file)
	cmd.Dir = repoDir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git show %s:%s: %w: %s", ref, file, err, strings.TrimSpace(stderr.String()))
	}
	return output, nil
}

// stripReplaces drops every replace directive, so the build list reflects the
// versions that were actually required.
func stripReplaces(content []byte) ([]byte, error) {
	file, err := modfile.Parse(goModFile, content, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrMalformedManifest, err)
	}

	replaces := append([]*modfile.Replace{}, file.Replace...)
	for _, replace := range replaces {
		if dropErr := file.DropReplace(replace.Old.Path, replace.Old.Version); dropErr != nil {
			return nil, fmt.Errorf("failed to drop replace of %s: %w", replace.Old.Path, dropErr)
		}
	}
	file.Cleanup()

	return file.Format()
}

// listModules evaluates the build list of goMod in a throwaway module directory.
func listModules(ctx context.Context, goMod []byte) ([]byte, error) {
	goBinary, err := locateGo(currentToolchainEnv())
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate the build list: %w", err)
	}

	workspace, err := os.MkdirTemp("", "releaselog-deps-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(workspace)

	if writeErr := os.WriteFile(filepath.Join(workspace, goModFile), goMod, workspaceMode); writeErr != nil {
		return nil, fmt.Errorf("failed to write go.mod: %w", writeErr)
	}
	if writeErr := os.WriteFile(filepath.Join(workspace, stubMainFile), []byte(stubMain), workspaceMode); writeErr != nil {
		return nil, fmt.Errorf("failed to write main.go: %w", writeErr)
	}

	cmd := exec.CommandContext(ctx, goBinary, "list", "-mod=mod", "-json", "-m", "all")
	cmd.Dir = workspace
	cmd.Env = append(os.Environ(), "GOWORK=off", "GOFLAGS=-mod=mod")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("go list -m all: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return output, nil
}

// parseModuleList decodes the concatenated JSON objects printed by
// `go list -m -json`, skipping the main module and modules without a version.
func parseModuleList(r io.Reader) ([]entities.DependencyRecord, error) {
	decoder := json.NewDecoder(r)

	var records []entities.DependencyRecord
	for {
		var listed listedModule
		err := decoder.Decode(&listed)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", entities.ErrMalformedManifest, err)
		}
		if listed.Main || listed.Version == "" {
			continue
		}
		records = append(records, entities.DependencyRecord{
			Path:    listed.Path,
			Version: listed.Version,
		})
	}
	return records, nil
}

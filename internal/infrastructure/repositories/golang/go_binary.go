package golang

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"
)

// errGoNotFound is returned when no go tool can evaluate the build list.
var errGoNotFound = errors.New("go tool not found")

// toolchainEnv is where the go tool may live on this machine.
type toolchainEnv struct {
	goroot   string
	home     string
	lookPath func(file string) (string, error)
}

func currentToolchainEnv() toolchainEnv {
	home, _ := os.UserHomeDir()
	return toolchainEnv{
		goroot:   os.Getenv("GOROOT"),
		home:     home,
		lookPath: exec.LookPath,
	}
}

// locateGo picks the go tool used for `go list`: $GOROOT/bin/go, then PATH, then
// the newest gvm install, the goenv shim and the usual system locations.
func locateGo(env toolchainEnv) (string, error) {
	if env.goroot != "" {
		candidate := filepath.Join(env.goroot, "bin", "go")
		if isExecutable(candidate) {
			return candidate, nil
		}
		logger.Warnf("[golang] GOROOT %q has no bin/go, searching elsewhere", env.goroot)
	}

	if env.lookPath != nil {
		if found, err := env.lookPath("go"); err == nil {
			return found, nil
		}
	}

	var candidates []string
	if env.home != "" {
		if newest := newestGVMGo(filepath.Join(env.home, ".gvm", "gos")); newest != "" {
			candidates = append(candidates, newest)
		}
		candidates = append(candidates, filepath.Join(env.home, ".goenv", "shims", "go"))
	}
	candidates = append(candidates, "/usr/local/go/bin/go", "/usr/bin/go", "/snap/bin/go")

	for _, candidate := range candidates {
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: set GOROOT or add go to PATH", errGoNotFound)
}

// newestGVMGo returns the bin/go of the highest goX.Y.Z install under gvmDir.
// Directory order is lexical, so go1.9 would otherwise win over go1.22.
func newestGVMGo(gvmDir string) string {
	entries, err := os.ReadDir(gvmDir)
	if err != nil {
		return ""
	}

	newest, newestVersion := "", ""
	for _, entry := range entries {
		version := "v" + strings.TrimPrefix(entry.Name(), "go")
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "go") || !semver.IsValid(version) {
			continue
		}
		candidate := filepath.Join(gvmDir, entry.Name(), "bin", "go")
		if !isExecutable(candidate) {
			continue
		}
		if newestVersion == "" || semver.Compare(version, newestVersion) > 0 {
			newest, newestVersion = candidate, version
		}
	}
	return newest
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

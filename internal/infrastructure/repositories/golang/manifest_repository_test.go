//go:build unit

package golang_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/infrastructure/repositories/golang"
)

func TestParseModuleList(t *testing.T) {
	t.Parallel()

	t.Run("should read every dependency and skip the main module", func(t *testing.T) {
		t.Parallel()

		// given
		output := `{
	"Path": "example.com/stub",
	"Main": true
}
{
	"Path": "github.com/acme/lib",
	"Version": "v1.2.3",
	"Indirect": true
}
{
	"Path": "golang.org/x/mod",
	"Version": "v0.0.0-20210101000000-abcdef012345"
}
`

		// when
		records, err := golang.ParseModuleList(strings.NewReader(output))

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.DependencyRecord{
			{Path: "github.com/acme/lib", Version: "v1.2.3"},
			{Path: "golang.org/x/mod", Version: "v0.0.0-20210101000000-abcdef012345"},
		}, records)
	})

	t.Run("should fail on truncated output", func(t *testing.T) {
		t.Parallel()

		// given
		output := `{"Path": "github.com/acme/lib", "Vers`

		// when
		_, err := golang.ParseModuleList(strings.NewReader(output))

		// then
		require.ErrorIs(t, err, entities.ErrMalformedManifest)
	})
}

func TestStripReplaces(t *testing.T) {
	t.Parallel()

	t.Run("should drop every replace directive", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte(`module github.com/acme/app

go 1.22

require github.com/acme/lib v1.2.3

replace github.com/acme/lib => ../lib

replace github.com/acme/other v1.0.0 => github.com/fork/other v1.0.1
`)

		// when
		stripped, err := golang.StripReplaces(content)

		// then
		require.NoError(t, err)
		assert.NotContains(t, string(stripped), "replace")
		assert.Contains(t, string(stripped), "require github.com/acme/lib v1.2.3")
	})

	t.Run("should reject an unparsable go.mod", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := golang.StripReplaces([]byte("module\nrequire (\n"))

		// then
		require.ErrorIs(t, err, entities.ErrMalformedManifest)
	})
}

func TestManifestRepository_MainModule(t *testing.T) {
	t.Parallel()

	t.Run("should read the module path of go.mod", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module github.com/acme/app/v3\n\ngo 1.22\n"), 0o644))

		// when
		module, err := golang.NewManifestRepository().MainModule(context.Background(), dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "github.com/acme/app/v3", module)
	})

	t.Run("should fail without go.mod", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := golang.NewManifestRepository().MainModule(context.Background(), t.TempDir())

		// then
		require.Error(t, err)
	})
}

package lox

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// TestFixtures runs every testdata/*.lox program end to end and snapshots
// its stdout, the way CWBudde-go-dws's fixture_test.go snapshots whole-file
// interpreter runs.
func TestFixtures(t *testing.T) {
	fixtures, err := filepath.Glob("../../testdata/*.lox")
	require.NoError(t, err)
	require.NotEmpty(t, fixtures)

	for _, path := range fixtures {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			source, err := os.ReadFile(path)
			require.NoError(t, err)

			var out bytes.Buffer
			bag := Run(source, &out)
			require.True(t, bag.Empty(), "unexpected diagnostics: %v", bag.Diagnostics())

			snaps.MatchSnapshot(t, out.String())
		})
	}
}

func TestFixtureShowAClosesOverDeclarationTimeScope(t *testing.T) {
	source, err := os.ReadFile("../../testdata/scope_shadowing.lox")
	require.NoError(t, err)

	var out bytes.Buffer
	bag := Run(source, &out)
	require.True(t, bag.Empty())
	require.Equal(t, "global\nglobal\n", out.String())
}

package storage

import (
	"context"
	"testing"

	"github.com/jwebster45206/dialog-engine/pkg/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The shipped data directory must load and validate cleanly.
func TestShippedData(t *testing.T) {
	fs := NewFileStore("../../data", testLogger(), nil)
	ctx := context.Background()

	names, err := fs.ListScripts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			g, err := fs.GetScript(ctx, name)
			require.NoError(t, err)
			assert.Empty(t, g.Validate())
		})
	}

	npcs, err := fs.ListNPCs(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, npcs)

	spec, err := fs.GetPCSpec(ctx, "courier")
	require.NoError(t, err)
	_, err = actor.NewPCFromSpec(spec)
	require.NoError(t, err)
}

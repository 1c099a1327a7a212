package storage

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/dialog-engine/pkg/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scripts", "guard.dlg"), "{1}{Halt!}{}{}{}{}{}\n{2}{Bye.}{}{}{}{0}{}\n")
	writeFile(t, filepath.Join(dir, "scripts", "trader.dlg"), "{1}{Buying?}{}{}{}{}{}\n{2}{No.}{}{}{}{0}{}\n")
	writeFile(t, filepath.Join(dir, "scripts", "notes.txt"), "not a script")
	writeFile(t, filepath.Join(dir, "npcs.yaml"), `npcs:
  - id: vic
    name: Vic
    state: stranger
  - name: Old Sully
    state: waiting
`)
	writeFile(t, filepath.Join(dir, "pcs", "courier.yaml"), `id: ignored
name: Courier
presentation: female
stats:
  intelligence: 6
  charisma: 4
`)
	return dir
}

func TestFileStore_Scripts(t *testing.T) {
	fs := NewFileStore(setupDataDir(t), testLogger(), nil)
	ctx := context.Background()

	names, err := fs.ListScripts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"guard.dlg", "trader.dlg"}, names)

	g, err := fs.GetScript(ctx, "guard")
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())

	_, err = fs.GetScript(ctx, "../npcs.yaml")
	assert.Error(t, err)

	_, err = fs.GetScript(ctx, "missing.dlg")
	assert.Error(t, err)
}

func TestFileStore_RandomScript(t *testing.T) {
	fs := NewFileStore(setupDataDir(t), testLogger(), rand.New(rand.NewPCG(1, 2)))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		name, g, err := fs.RandomScript(context.Background())
		require.NoError(t, err)
		require.NotNil(t, g)
		seen[name] = true
	}
	assert.Len(t, seen, 2, "both scripts should be picked over 50 draws")
}

func TestFileStore_NoScripts(t *testing.T) {
	fs := NewFileStore(t.TempDir(), testLogger(), nil)

	names, err := fs.ListScripts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)

	_, _, err = fs.RandomScript(context.Background())
	assert.ErrorIs(t, err, ErrNoScripts)
}

func TestFileStore_NPCs(t *testing.T) {
	fs := NewFileStore(setupDataDir(t), testLogger(), rand.New(rand.NewPCG(3, 4)))
	ctx := context.Background()

	npcs, err := fs.ListNPCs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []actor.NPC{
		{ID: "vic", Name: "Vic", State: actor.Stranger},
		{ID: "old_sully", Name: "Old Sully", State: actor.Waiting},
	}, npcs)

	sully, err := fs.GetNPC(ctx, "old_sully")
	require.NoError(t, err)
	assert.Equal(t, actor.Waiting, sully.State)

	_, err = fs.GetNPC(ctx, "nobody")
	assert.Error(t, err)

	npc, err := fs.RandomNPC(ctx)
	require.NoError(t, err)
	assert.Contains(t, []string{"vic", "old_sully"}, npc.ID)
}

func TestFileStore_InvalidRoster(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "npcs.yaml"), "npcs:\n  - name: Vic\n    state: enemy\n")
	fs := NewFileStore(dir, testLogger(), nil)

	_, err := fs.ListNPCs(context.Background())
	assert.Error(t, err)

	_, err = NewFileStore(t.TempDir(), testLogger(), nil).RandomNPC(context.Background())
	assert.ErrorIs(t, err, ErrNoNPCs)
}

func TestFileStore_GetPCSpec(t *testing.T) {
	fs := NewFileStore(setupDataDir(t), testLogger(), nil)

	spec, err := fs.GetPCSpec(context.Background(), "courier")
	require.NoError(t, err)
	assert.Equal(t, "courier", spec.ID, "file name overrides id")
	assert.Equal(t, "Courier", spec.Name)
	assert.Equal(t, "female", spec.Presentation)
	assert.Equal(t, 6, spec.Stats.Intelligence)

	_, err = fs.GetPCSpec(context.Background(), "nobody")
	assert.Error(t, err)
}

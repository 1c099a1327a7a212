package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/dialog-engine/internal/storage"
	"github.com/jwebster45206/dialog-engine/pkg/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickScriptAndNPC_FromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tim.dlg")
	require.NoError(t, os.WriteFile(path, []byte("  {1}{Ready?}{}{}{}{}{}\n  {2}{Yes.}{}{}{}{0}{}\n"), 0o644))

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	files := storage.NewFileStore(t.TempDir(), log, nil)
	opts := options{path: path}

	name, g, err := pickScript(context.Background(), files, opts)
	require.NoError(t, err)
	assert.Equal(t, "tim.dlg", name)
	assert.Equal(t, []int{1, 2}, g.Numbers())

	npc, err := pickNPC(context.Background(), files, opts)
	require.NoError(t, err)
	assert.Equal(t, "Tim", npc.Name)
	assert.Equal(t, actor.Follower, npc.State)

	npc.State = actor.Stranger
	assert.Equal(t, actor.Follower, pathNPC.State, "each pick gets its own NPC")
}

func TestPickScript_MissingPath(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	files := storage.NewFileStore(t.TempDir(), log, nil)

	_, _, err := pickScript(context.Background(), files, options{path: filepath.Join(t.TempDir(), "nope.dlg")})
	assert.Error(t, err)
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/dialog-engine/internal/config"
	"github.com/jwebster45206/dialog-engine/internal/console"
	"github.com/jwebster45206/dialog-engine/internal/logger"
	"github.com/jwebster45206/dialog-engine/internal/storage"
	"github.com/jwebster45206/dialog-engine/pkg/actor"
	"github.com/jwebster45206/dialog-engine/pkg/conversation"
	"github.com/jwebster45206/dialog-engine/pkg/dialog"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("205")). // pink
	Bold(true)

type options struct {
	script string
	path   string
	npc    string
	copy   bool
}

// pathNPC is who the player talks to when a script file is given directly.
var pathNPC = actor.NPC{ID: "tim", Name: "Tim", State: actor.Follower}

func main() {
	var opts options
	flag.StringVar(&opts.script, "script", "", "script under DATA_DIR/scripts (random if empty)")
	flag.StringVar(&opts.npc, "npc", "", "NPC id from DATA_DIR/npcs.yaml (random if empty)")
	flag.BoolVar(&opts.copy, "copy", false, "copy the transcript to the clipboard when done")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [script.dlg]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.path = flag.Arg(0)

	cfg := config.Load()
	log := logger.Setup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger, opts options) error {
	files := storage.NewFileStore(cfg.DataDir, log, nil)

	scriptName, g, err := pickScript(ctx, files, opts)
	if err != nil {
		return err
	}
	log = logger.WithScript(log, scriptName)

	npc, err := pickNPC(ctx, files, opts)
	if err != nil {
		return err
	}

	states, err := openStateStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		_ = states.Close() // Ignore error in defer
	}()
	if err := storage.Restore(ctx, states, npc); err != nil {
		logger.WithError(log, err).Warn("Could not restore NPC state, using roster state")
	}

	spec, err := files.GetPCSpec(ctx, cfg.Player)
	if err != nil {
		return err
	}
	pc, err := actor.NewPCFromSpec(spec)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(scriptName))
	fmt.Println()

	engine := conversation.NewEngine(
		conversation.PlayerFromPC(pc),
		&console.Chooser{Speaker: npc.Name},
		conversation.WithReporter(&console.Printer{Out: os.Stdout}),
		conversation.WithLogger(log),
		conversation.WithNameToken(cfg.NameToken),
	)

	runErr := engine.Visit(ctx, &console.Chooser{}, g, npc, dialog.Start)
	if errors.Is(runErr, console.ErrQuit) || errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	if err := states.SaveNPCState(ctx, npc.ID, npc.State); err != nil {
		logger.WithError(log, err).Error("Failed to save NPC state", "npc", npc.ID)
	}

	if opts.copy {
		if err := clipboard.WriteAll(strings.Join(engine.Transcript(), "\n")); err != nil {
			logger.WithError(log, err).Warn("Failed to copy transcript")
		} else {
			fmt.Println("Transcript copied to clipboard.")
		}
	}
	return runErr
}

// pickScript prefers a script file path, then a named script under the
// data directory, then a random one.
func pickScript(ctx context.Context, files *storage.FileStore, opts options) (string, *dialog.Graph, error) {
	switch {
	case opts.path != "":
		g, err := dialog.LoadFile(opts.path)
		return filepath.Base(opts.path), g, err
	case opts.script != "":
		g, err := files.GetScript(ctx, opts.script)
		return opts.script, g, err
	default:
		return files.RandomScript(ctx)
	}
}

func pickNPC(ctx context.Context, files *storage.FileStore, opts options) (*actor.NPC, error) {
	switch {
	case opts.npc != "":
		return files.GetNPC(ctx, opts.npc)
	case opts.path != "":
		npc := pathNPC
		return &npc, nil
	default:
		return files.RandomNPC(ctx)
	}
}

func openStateStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.StateStore, error) {
	if cfg.RedisURL == "" {
		log.Debug("No REDIS_URL set, NPC state will not outlive this run")
		return storage.NewMemoryStateStore(), nil
	}

	store, err := storage.NewRedisStateStore(cfg.RedisURL, log)
	if err != nil {
		return nil, err
	}
	if err := store.WaitForConnection(ctx, 5, time.Second); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

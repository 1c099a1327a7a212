package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jwebster45206/dialog-engine/pkg/actor"
	"github.com/jwebster45206/dialog-engine/pkg/dialog"
	"gopkg.in/yaml.v3"
)

const (
	ScriptExt  = ".dlg"
	rosterFile = "npcs.yaml"
)

var (
	ErrNoScripts = errors.New("no scripts found")
	ErrNoNPCs    = errors.New("npc roster is empty")
)

// FileStore loads scripts, the NPC roster and player profiles from a data
// directory:
//
//	<dataDir>/scripts/*.dlg
//	<dataDir>/npcs.yaml
//	<dataDir>/pcs/<id>.yaml
type FileStore struct {
	dataDir string
	logger  *slog.Logger
	rng     *rand.Rand
}

type roster struct {
	NPCs []actor.NPC `yaml:"npcs"`
}

// NewFileStore creates a file store rooted at dataDir. A nil rng uses a
// randomly seeded source.
func NewFileStore(dataDir string, logger *slog.Logger, rng *rand.Rand) *FileStore {
	if dataDir == "" {
		dataDir = "./data"
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &FileStore{
		dataDir: dataDir,
		logger:  logger,
		rng:     rng,
	}
}

// Script operations

// ListScripts returns script file names under scripts/, sorted.
func (f *FileStore) ListScripts(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(f.dataDir, "scripts"))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read scripts directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ScriptExt {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// GetScript loads a script by file name. The extension may be omitted.
func (f *FileStore) GetScript(ctx context.Context, name string) (*dialog.Graph, error) {
	if filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid script name %q", name)
	}
	if filepath.Ext(name) != ScriptExt {
		name += ScriptExt
	}

	g, err := dialog.LoadFile(filepath.Join(f.dataDir, "scripts", name))
	if err != nil {
		f.logger.Error("Failed to load script", "script", name, "error", err)
		return nil, err
	}
	f.logger.Debug("Script loaded", "script", name, "lines", g.Len())
	return g, nil
}

// RandomScript picks one script at random and loads it.
func (f *FileStore) RandomScript(ctx context.Context) (string, *dialog.Graph, error) {
	names, err := f.ListScripts(ctx)
	if err != nil {
		return "", nil, err
	}
	if len(names) == 0 {
		return "", nil, ErrNoScripts
	}

	name := names[f.rng.IntN(len(names))]
	g, err := f.GetScript(ctx, name)
	if err != nil {
		return "", nil, err
	}
	return name, g, nil
}

// NPC operations

// ListNPCs returns the roster from npcs.yaml.
func (f *FileStore) ListNPCs(ctx context.Context) ([]actor.NPC, error) {
	path := filepath.Join(f.dataDir, rosterFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoNPCs
		}
		return nil, fmt.Errorf("failed to read npc roster: %w", err)
	}

	var r roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse npc roster %s: %w", path, err)
	}
	for i := range r.NPCs {
		if r.NPCs[i].ID == "" {
			r.NPCs[i].ID = strings.ToLower(strings.Join(strings.Fields(r.NPCs[i].Name), "_"))
		}
	}
	return r.NPCs, nil
}

// GetNPC returns the roster entry with the given id.
func (f *FileStore) GetNPC(ctx context.Context, id string) (*actor.NPC, error) {
	npcs, err := f.ListNPCs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range npcs {
		if npcs[i].ID == id {
			return &npcs[i], nil
		}
	}
	return nil, fmt.Errorf("npc not found: %s", id)
}

// RandomNPC picks one roster entry at random.
func (f *FileStore) RandomNPC(ctx context.Context) (*actor.NPC, error) {
	npcs, err := f.ListNPCs(ctx)
	if err != nil {
		return nil, err
	}
	if len(npcs) == 0 {
		return nil, ErrNoNPCs
	}
	npc := npcs[f.rng.IntN(len(npcs))]
	return &npc, nil
}

// PC operations

// GetPCSpec loads a player profile from pcs/<id>.yaml. The file name
// overrides any id in the YAML.
func (f *FileStore) GetPCSpec(ctx context.Context, id string) (*actor.PCSpec, error) {
	if filepath.Base(id) != id {
		return nil, fmt.Errorf("invalid pc id %q", id)
	}
	path := filepath.Join(f.dataDir, "pcs", id+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("pc not found: %s", id)
		}
		return nil, fmt.Errorf("failed to read PC file: %w", err)
	}

	var spec actor.PCSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal PC spec: %w", err)
	}
	spec.ID = id
	return &spec, nil
}

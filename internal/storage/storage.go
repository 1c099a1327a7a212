package storage

import (
	"context"

	"github.com/jwebster45206/dialog-engine/pkg/actor"
)

// StateStore persists each NPC's relationship state between conversations.
type StateStore interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// SaveNPCState records the NPC's current state
	SaveNPCState(ctx context.Context, npcID string, s actor.RelationshipState) error

	// LoadNPCState returns the saved state. found is false if nothing was
	// saved for the NPC yet.
	LoadNPCState(ctx context.Context, npcID string) (s actor.RelationshipState, found bool, err error)
}

// Restore overwrites npc's state with the saved one, if any.
func Restore(ctx context.Context, store StateStore, npc *actor.NPC) error {
	s, found, err := store.LoadNPCState(ctx, npc.ID)
	if err != nil {
		return err
	}
	if found {
		npc.State = s
	}
	return nil
}

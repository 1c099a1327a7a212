package conversation

import (
	"context"
	"fmt"

	"github.com/jwebster45206/dialog-engine/pkg/actor"
	"github.com/jwebster45206/dialog-engine/pkg/dialog"
)

// VisitPrompt is asked between conversations.
const VisitPrompt = "What do you want to do?"

const (
	ActionTalk = iota
	ActionLeave
)

var visitActions = []string{"Talk", "Leave"}

// Visit keeps the player with npc until they choose to leave. Each Talk
// greets the player according to the NPC's current state and runs a
// conversation from start, so relationship changes carry into the next one.
// The actions chooser is asked for Talk or Leave; replies inside a
// conversation still go to the engine's chooser.
func (e *Engine) Visit(ctx context.Context, actions Chooser, g *dialog.Graph, npc *actor.NPC, start int) error {
	log := e.logger.With("npc", npc.ID)
	talks := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		idx, err := actions.Choose(ctx, VisitPrompt, visitActions)
		if err != nil {
			return fmt.Errorf("visit action: %w", err)
		}

		switch idx {
		case ActionTalk:
			talks++
			e.emit(Event{Kind: EventGreeting, Speaker: npc.Name, Text: npc.Greeting(), State: npc.State})
			if err := e.Run(ctx, g, npc, start); err != nil {
				return err
			}
		case ActionLeave:
			log.Info("Player left", "conversations", talks, "state", npc.State.String())
			return nil
		default:
			return fmt.Errorf("visit action: %w: %d of %d", ErrInvalidSelection, idx, len(visitActions))
		}
	}
}

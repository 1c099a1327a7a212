package conversation

import (
	"fmt"

	"github.com/jwebster45206/dialog-engine/pkg/actor"
)

// EventKind classifies what the engine reports while a conversation runs.
type EventKind int

const (
	EventSay            EventKind = iota // NPC speaks a prompt
	EventReply                           // player picks a choice
	EventGateFailed                      // intelligence or state gate rejected a choice
	EventStateChanged                    // a result opcode moved the NPC's state
	EventNotImplemented                  // an opcode the engine does not handle yet
	EventGreeting                        // the player walks up to the NPC
)

func (k EventKind) String() string {
	switch k {
	case EventSay:
		return "say"
	case EventReply:
		return "reply"
	case EventGateFailed:
		return "gate_failed"
	case EventStateChanged:
		return "state_changed"
	case EventNotImplemented:
		return "not_implemented"
	case EventGreeting:
		return "greeting"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is one user-visible step of a conversation.
type Event struct {
	Kind    EventKind
	Speaker string // NPC or player name
	Line    int    // script line the event came from
	Text    string
	State   actor.RelationshipState // new state, EventStateChanged only
}

// String renders the event as a transcript line.
func (e Event) String() string {
	switch e.Kind {
	case EventSay, EventReply:
		return e.Speaker + ": " + e.Text
	default:
		return "* " + e.Text
	}
}

// Reporter receives events as they happen.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) { f(e) }

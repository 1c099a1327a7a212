package actor

import (
	"fmt"
	"strings"
)

// RelationshipState is an NPC's standing with the player.
type RelationshipState int

const (
	Stranger RelationshipState = iota
	Waiting
	Follower
)

func (s RelationshipState) String() string {
	switch s {
	case Stranger:
		return "stranger"
	case Waiting:
		return "waiting"
	case Follower:
		return "follower"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Describe returns the state as it reads in a sentence about the NPC,
// e.g. "Vic is now following you".
func (s RelationshipState) Describe() string {
	switch s {
	case Waiting:
		return "waiting for you"
	case Follower:
		return "following you"
	default:
		return "a stranger"
	}
}

// ParseRelationshipState parses "stranger", "waiting" or "follower",
// ignoring case and surrounding space.
func ParseRelationshipState(v string) (RelationshipState, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "stranger", "":
		return Stranger, nil
	case "waiting":
		return Waiting, nil
	case "follower", "following":
		return Follower, nil
	default:
		return Stranger, fmt.Errorf("unknown relationship state %q", v)
	}
}

func (s RelationshipState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *RelationshipState) UnmarshalText(text []byte) error {
	parsed, err := ParseRelationshipState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// NPC represents a non-player character the player can talk to.
// The NPC owns its relationship state; dialog scripts only read it
// through the conversation engine.
type NPC struct {
	ID    string            `json:"id" yaml:"id"`
	Name  string            `json:"name" yaml:"name"`
	State RelationshipState `json:"state" yaml:"state"`
}

// SetState moves the NPC to s and returns the previous state.
func (n *NPC) SetState(s RelationshipState) RelationshipState {
	prev := n.State
	n.State = s
	return prev
}

// Greeting is the line shown as the player walks up to the NPC, which
// depends on how the NPC already knows them.
func (n *NPC) Greeting() string {
	switch n.State {
	case Waiting:
		return fmt.Sprintf("You approach %s. They have been waiting for you.", n.Name)
	case Follower:
		return fmt.Sprintf("You turn to %s.", n.Name)
	default:
		return fmt.Sprintf("You approach the stranger. They introduce themselves as %s.", n.Name)
	}
}

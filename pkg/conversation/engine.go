// Package conversation walks a dialog graph with a player, asking a
// Chooser for each reply and applying gates and effects to the NPC.
package conversation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwebster45206/dialog-engine/pkg/actor"
	"github.com/jwebster45206/dialog-engine/pkg/dialog"
	"github.com/jwebster45206/dialog-engine/pkg/textfilter"
)

// Chooser presents a prompt and its options and returns the zero-based
// index of the option picked. It is never called with an empty option list.
type Chooser interface {
	Choose(ctx context.Context, prompt string, options []string) (int, error)
}

// Player carries the stats dialog gates read.
type Player struct {
	Name         string
	Female       bool
	Intelligence int
}

// PlayerFromPC derives dialog stats from a player character.
func PlayerFromPC(pc *actor.PC) Player {
	return Player{
		Name:         pc.Spec.Name,
		Female:       pc.IsFemale(),
		Intelligence: pc.Intelligence(),
	}
}

// Engine runs conversations for one player.
type Engine struct {
	id         uuid.UUID
	player     Player
	chooser    Chooser
	reporter   Reporter
	logger     *slog.Logger
	names      *textfilter.NameSubstituter
	nameToken  string
	transcript []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithReporter sends every event to r as well as the transcript.
func WithReporter(r Reporter) Option {
	return func(e *Engine) { e.reporter = r }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithNameToken overrides the player-name placeholder.
func WithNameToken(token string) Option {
	return func(e *Engine) { e.nameToken = token }
}

// NewEngine creates an engine for player that asks chooser for replies.
func NewEngine(player Player, chooser Chooser, opts ...Option) *Engine {
	e := &Engine{
		id:      uuid.New(),
		player:  player,
		chooser: chooser,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.names = textfilter.NewNameSubstituter(e.nameToken, player.Name)
	e.logger = e.logger.With("conversation_id", e.id.String())
	return e
}

// ID identifies the engine's conversation in logs.
func (e *Engine) ID() uuid.UUID { return e.id }

// Transcript returns every event reported so far, one line each.
func (e *Engine) Transcript() []string {
	out := make([]string, len(e.transcript))
	copy(out, e.transcript)
	return out
}

type gateKind int

const (
	gatePass gateKind = iota
	gateRetryAtChoice
	gateRetryAtPrompt
)

type gateOutcome struct {
	kind gateKind
	line int
}

// Run plays the conversation starting at prompt start until a branch ends.
// Gate failures are retried in place; script integrity problems end the
// conversation with an *IntegrityError.
func (e *Engine) Run(ctx context.Context, g *dialog.Graph, npc *actor.NPC, start int) error {
	log := e.logger.With("npc", npc.ID)
	log.Info("Conversation started", "start", start, "state", npc.State.String())

	node := start
	speak := true
	for {
		if node == dialog.End {
			log.Info("Conversation ended", "state", npc.State.String())
			return nil
		}

		prompt, ok := g.Line(node)
		if !ok {
			return &IntegrityError{Line: node, Err: ErrMissingNode}
		}
		if len(prompt.Choices) == 0 {
			log.Info("Conversation reached a leaf", "line", node, "state", npc.State.String())
			return nil
		}

		text := e.names.Apply(prompt.DisplayText(e.player.Female))
		if speak {
			e.emit(Event{Kind: EventSay, Speaker: npc.Name, Line: node, Text: text})
		}

		options := make([]string, len(prompt.Choices))
		for i, n := range prompt.Choices {
			c, ok := g.Line(n)
			if !ok {
				return &IntegrityError{Line: n, Err: ErrMissingNode}
			}
			options[i] = c.Text
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		log.Debug("Awaiting choice", "line", node, "options", len(options))
		idx, err := e.chooser.Choose(ctx, text, options)
		if err != nil {
			return fmt.Errorf("choice at line %d: %w", node, err)
		}
		if idx < 0 || idx >= len(options) {
			return fmt.Errorf("choice at line %d: %w: %d of %d", node, ErrInvalidSelection, idx, len(options))
		}

		chosen, _ := g.Line(prompt.Choices[idx])
		e.emit(Event{Kind: EventReply, Speaker: e.playerLabel(), Line: chosen.Number, Text: chosen.Text})

		out := e.checkGates(log, npc, node, chosen)
		switch out.kind {
		case gateRetryAtChoice:
			if c, ok := g.Line(out.line); ok && c.Owner != 0 {
				node = c.Owner
			}
			speak = false
			continue
		case gateRetryAtPrompt:
			node = out.line
			speak = true
			continue
		}

		e.applyResult(log, npc, chosen)

		if chosen.Response == nil {
			return &IntegrityError{Line: chosen.Number, Err: ErrMissingResponse}
		}
		node = *chosen.Response
		speak = true
	}
}

// checkGates evaluates the intelligence requirement, then the state test.
func (e *Engine) checkGates(log *slog.Logger, npc *actor.NPC, node int, chosen *dialog.Line) gateOutcome {
	if chosen.Intelligence != nil && e.player.Intelligence < *chosen.Intelligence {
		e.emit(Event{
			Kind:    EventGateFailed,
			Speaker: npc.Name,
			Line:    chosen.Number,
			Text: fmt.Sprintf("Insufficient intelligence to say that to %s (need %d, have %d).",
				npc.Name, *chosen.Intelligence, e.player.Intelligence),
		})
		log.Debug("Intelligence gate failed", "line", chosen.Number,
			"required", *chosen.Intelligence, "intelligence", e.player.Intelligence)
		return gateOutcome{kind: gateRetryAtChoice, line: chosen.Number}
	}

	var want actor.RelationshipState
	switch chosen.Test {
	case "":
		return gateOutcome{kind: gatePass}
	case dialog.TestFollower:
		want = actor.Follower
	case dialog.TestWaiting:
		want = actor.Waiting
	default:
		e.notImplemented(log, npc, chosen, "test", chosen.Test)
		return gateOutcome{kind: gatePass}
	}

	if npc.State != want {
		e.emit(Event{
			Kind:    EventGateFailed,
			Speaker: npc.Name,
			Line:    chosen.Number,
			Text:    fmt.Sprintf("%s must be %s, but is %s.", npc.Name, want.Describe(), npc.State.Describe()),
		})
		log.Debug("State gate failed", "line", chosen.Number, "want", want.String(), "state", npc.State.String())
		return gateOutcome{kind: gateRetryAtPrompt, line: node}
	}
	return gateOutcome{kind: gatePass}
}

func (e *Engine) applyResult(log *slog.Logger, npc *actor.NPC, chosen *dialog.Line) {
	var next actor.RelationshipState
	switch chosen.Result {
	case "":
		return
	case dialog.ResultFollow:
		next = actor.Follower
	case dialog.ResultWait:
		next = actor.Waiting
	case dialog.ResultLeave:
		next = actor.Stranger
	default:
		e.notImplemented(log, npc, chosen, "result", chosen.Result)
		return
	}

	prev := npc.SetState(next)
	log.Info("Relationship changed", "line", chosen.Number, "from", prev.String(), "to", next.String())
	e.emit(Event{
		Kind:    EventStateChanged,
		Speaker: npc.Name,
		Line:    chosen.Number,
		Text:    fmt.Sprintf("%s is now %s.", npc.Name, next.Describe()),
		State:   next,
	})
}

func (e *Engine) notImplemented(log *slog.Logger, npc *actor.NPC, chosen *dialog.Line, field, opcode string) {
	log.Warn("Opcode not implemented", "line", chosen.Number, "field", field, "opcode", opcode)
	e.emit(Event{
		Kind:    EventNotImplemented,
		Speaker: npc.Name,
		Line:    chosen.Number,
		Text:    fmt.Sprintf("The %s opcode %q on line %d is not implemented yet.", field, opcode, chosen.Number),
	})
}

func (e *Engine) playerLabel() string {
	if name := e.names.Name(); name != "" {
		return name
	}
	return "You"
}

func (e *Engine) emit(ev Event) {
	e.transcript = append(e.transcript, ev.String())
	if e.reporter != nil {
		e.reporter.Report(ev)
	}
}

package conversation

import (
	"context"
	"testing"

	"github.com/jwebster45206/dialog-engine/pkg/actor"
	"github.com/jwebster45206/dialog-engine/pkg/dialog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recruitScript = []string{
	"{1}{Need something?}{}{}{}{}{}",
	"{2}{Follow me.}{}{}{}{0}{uw}",
	"{3}{Wait here.}{}{}{fo}{0}{wa}",
	"{4}{Bye.}{}{}{}{0}{}",
}

func TestVisit_StateCarriesBetweenConversations(t *testing.T) {
	g := mustLoad(t, recruitScript...)
	npc := &actor.NPC{ID: "vic", Name: "Vic"}
	actions := &scriptedChooser{picks: []int{ActionTalk, ActionTalk, ActionTalk, ActionLeave}}
	replies := &scriptedChooser{picks: []int{0, 1, 2}}
	e, rep := newTestEngine(Player{Name: "Courier"}, replies)

	require.NoError(t, e.Visit(context.Background(), actions, g, npc, dialog.Start))

	require.Len(t, actions.calls, 4)
	assert.Equal(t, VisitPrompt, actions.calls[0].prompt)
	assert.Equal(t, []string{"Talk", "Leave"}, actions.calls[0].options)
	assert.Len(t, replies.calls, 3)
	assert.Equal(t, actor.Waiting, npc.State)

	var greetings []string
	for _, ev := range rep.events {
		if ev.Kind == EventGreeting {
			greetings = append(greetings, ev.Text)
		}
	}
	assert.Equal(t, []string{
		"You approach the stranger. They introduce themselves as Vic.",
		"You turn to Vic.",
		"You approach Vic. They have been waiting for you.",
	}, greetings)
}

func TestVisit_LeaveWithoutTalking(t *testing.T) {
	g := mustLoad(t, recruitScript...)
	npc := &actor.NPC{ID: "vic", Name: "Vic", State: actor.Follower}
	replies := &scriptedChooser{}
	e, rep := newTestEngine(Player{Name: "Courier"}, replies)

	require.NoError(t, e.Visit(context.Background(), &scriptedChooser{picks: []int{ActionLeave}}, g, npc, dialog.Start))

	assert.Empty(t, replies.calls)
	assert.Empty(t, rep.events)
	assert.Equal(t, actor.Follower, npc.State)
}

func TestVisit_Errors(t *testing.T) {
	g := mustLoad(t, recruitScript...)

	t.Run("invalid action", func(t *testing.T) {
		e, _ := newTestEngine(Player{}, &scriptedChooser{})
		err := e.Visit(context.Background(), &scriptedChooser{picks: []int{5}}, g, &actor.NPC{Name: "Vic"}, dialog.Start)
		assert.ErrorIs(t, err, ErrInvalidSelection)
	})

	t.Run("conversation error stops the visit", func(t *testing.T) {
		actions := &scriptedChooser{picks: []int{ActionTalk, ActionLeave}}
		e, _ := newTestEngine(Player{}, &scriptedChooser{})
		err := e.Visit(context.Background(), actions, g, &actor.NPC{Name: "Vic"}, dialog.Start)
		require.Error(t, err)
		assert.Len(t, actions.calls, 1)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		actions := &scriptedChooser{picks: []int{ActionTalk}}
		e, _ := newTestEngine(Player{}, &scriptedChooser{})
		assert.ErrorIs(t, e.Visit(ctx, actions, g, &actor.NPC{Name: "Vic"}, dialog.Start), context.Canceled)
		assert.Empty(t, actions.calls)
	})
}

package reply

import (
	"context"
	"testing"

	"smartreply/app/config"
	"smartreply/app/service/generation"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	di := do.New()
	t.Cleanup(func() {
		_ = di.Shutdown()
	})

	do.ProvideValue(di, &config.Config{
		Reply: config.Reply{
			MaxContextMessages: 5,
			MaxReplyLength:     100,
			NumSuggestions:     3,
			MinConfidence:      0.3,
		},
	})
	do.Provide(di, generation.New)

	svc, err := New(di)
	require.NoError(t, err)

	return svc
}

// fakeBackend stands in for a loaded generation backend.
type fakeBackend struct {
	candidates []string
}

func (f *fakeBackend) Available() bool {
	return true
}

func (f *fakeBackend) Generate(_ context.Context, _ string, count, _ int) []string {
	if len(f.candidates) > count {
		return f.candidates[:count]
	}

	return f.candidates
}

func messagesFrom(senders []string, contents []string) []Message {
	messages := make([]Message, len(contents))
	for i := range contents {
		messages[i] = Message{
			Content:  contents[i],
			SenderID: senders[i%len(senders)],
		}
	}

	return messages
}

func TestGenerateRepliesFallbackWithoutBackend(t *testing.T) {
	svc := newTestService(t)

	// Backend never loaded and quick replies excluded: the fallback
	// tier must still produce output.
	resp := svc.GenerateReplies(context.Background(), Request{
		Context: ConversationContext{
			Messages: messagesFrom([]string{"u1"}, []string{"the build is green"}),
		},
		CurrentUserID:       "u2",
		Tone:                ToneProfessional,
		NumSuggestions:      3,
		MaxLength:           100,
		IncludeQuickReplies: false,
	})

	require.NotEmpty(t, resp.Suggestions)

	for i, suggestion := range resp.Suggestions {
		assert.True(t, suggestion.IsQuickReply)
		assert.GreaterOrEqual(t, suggestion.Confidence, 0.0)
		assert.LessOrEqual(t, suggestion.Confidence, 1.0)

		if i > 0 {
			assert.LessOrEqual(t, suggestion.Confidence, resp.Suggestions[i-1].Confidence)
		}
	}
}

func TestGenerateRepliesFormalAcknowledge(t *testing.T) {
	svc := newTestService(t)

	resp := svc.GenerateReplies(context.Background(), Request{
		Context: ConversationContext{
			Messages: messagesFrom([]string{"u1"}, []string{"deploy finished without errors"}),
		},
		CurrentUserID:       "u2",
		Tone:                ToneFormal,
		NumSuggestions:      2,
		MaxLength:           100,
		IncludeQuickReplies: false,
	})

	// General intent has no template set, so the acknowledge fallback
	// feeds the formal-adapted suggestions.
	require.Len(t, resp.Suggestions, 2)
	assert.Equal(t, "Understood, thanks!", resp.Suggestions[0].Text)
	assert.Equal(t, "Understood", resp.Suggestions[1].Text)
	assert.InDelta(t, 0.6, resp.Suggestions[0].Confidence, 1e-9)
	assert.InDelta(t, 0.5, resp.Suggestions[1].Confidence, 1e-9)
	assert.True(t, resp.Suggestions[0].IsQuickReply)
	assert.True(t, resp.Suggestions[1].IsQuickReply)
}

func TestGenerateRepliesModelTier(t *testing.T) {
	svc := newTestService(t)
	svc.backend = &fakeBackend{candidates: []string{
		"Sounds good to me.",
		"Could you check the logs?",
	}}

	resp := svc.GenerateReplies(context.Background(), Request{
		Context: ConversationContext{
			Messages: messagesFrom([]string{"u1"}, []string{"deploy is out"}),
		},
		CurrentUserID:       "u2",
		Tone:                ToneProfessional,
		NumSuggestions:      3,
		MaxLength:           100,
		IncludeQuickReplies: false,
	})

	require.Len(t, resp.Suggestions, 2)

	// Candidates keep emission order on the 0.7 ladder and carry the
	// intent of their own text, not the input's.
	assert.Equal(t, "Sounds good to me.", resp.Suggestions[0].Text)
	assert.InDelta(t, 0.7, resp.Suggestions[0].Confidence, 1e-9)
	assert.Equal(t, IntentGeneral, resp.Suggestions[0].Intent)
	assert.False(t, resp.Suggestions[0].IsQuickReply)

	assert.Equal(t, "Could you check the logs?", resp.Suggestions[1].Text)
	assert.InDelta(t, 0.6, resp.Suggestions[1].Confidence, 1e-9)
	assert.Equal(t, IntentQuestion, resp.Suggestions[1].Intent)
	assert.False(t, resp.Suggestions[1].IsQuickReply)
}

func TestGenerateRepliesMergesTiers(t *testing.T) {
	svc := newTestService(t)
	svc.backend = &fakeBackend{candidates: []string{"On it."}}

	resp := svc.GenerateReplies(context.Background(), Request{
		Context: ConversationContext{
			Messages: messagesFrom([]string{"u1"}, []string{"hello team"}),
		},
		CurrentUserID:       "u2",
		Tone:                ToneProfessional,
		NumSuggestions:      3,
		MaxLength:           100,
		IncludeQuickReplies: true,
	})

	// Quick replies outrank the model candidate: 0.8, 0.7, then 0.7
	// from the model tier, stable on the tie.
	require.Len(t, resp.Suggestions, 3)
	assert.Equal(t, "Hi there!", resp.Suggestions[0].Text)
	assert.True(t, resp.Suggestions[0].IsQuickReply)
	assert.Equal(t, "On it.", resp.Suggestions[1].Text)
	assert.False(t, resp.Suggestions[1].IsQuickReply)
	assert.Equal(t, "Hello!", resp.Suggestions[2].Text)
	assert.True(t, resp.Suggestions[2].IsQuickReply)
}

func TestGenerateRepliesRespectsSuggestionCap(t *testing.T) {
	svc := newTestService(t)

	resp := svc.GenerateReplies(context.Background(), Request{
		Context: ConversationContext{
			Messages: messagesFrom([]string{"u1"}, []string{"hello there"}),
		},
		CurrentUserID:       "u2",
		Tone:                ToneFriendly,
		NumSuggestions:      1,
		MaxLength:           100,
		IncludeQuickReplies: true,
	})

	assert.Len(t, resp.Suggestions, 1)
	assert.Equal(t, IntentGreeting, resp.Suggestions[0].Intent)
}

func TestGenerateRepliesContextSummary(t *testing.T) {
	svc := newTestService(t)

	resp := svc.GenerateReplies(context.Background(), Request{
		Context: ConversationContext{
			Messages: messagesFrom(
				[]string{"u1", "u2"},
				[]string{"standup in 5", "joining now", "same"},
			),
		},
		CurrentUserID:  "u3",
		NumSuggestions: 3,
		MaxLength:      100,
	})

	assert.Equal(t, "Conversation with 2 participant(s), 3 recent message(s)", resp.ContextSummary)
	assert.GreaterOrEqual(t, resp.ProcessingTimeMs, 0.0)
}

func TestGenerateRepliesEmptyContextDoesNotPanic(t *testing.T) {
	svc := newTestService(t)

	resp := svc.GenerateReplies(context.Background(), Request{
		Context:        ConversationContext{},
		CurrentUserID:  "u1",
		NumSuggestions: 3,
		MaxLength:      100,
	})

	assert.Equal(t, "No context available", resp.ContextSummary)
	assert.NotEmpty(t, resp.Suggestions)
}

func TestGetQuickRepliesGreetingScenario(t *testing.T) {
	svc := newTestService(t)

	resp := svc.GetQuickReplies(QuickRequest{LastMessage: "hey, how's it going?"})

	assert.Equal(t, IntentGreeting, resp.Intent)
	assert.Equal(t, []string{"Hi there!", "Hello!", "Hey!", "Good to hear from you"}, resp.Replies)
}

func TestGetQuickRepliesCap(t *testing.T) {
	svc := newTestService(t)

	for _, message := range []string{"ok", "thanks a lot", "why though?", "bye"} {
		resp := svc.GetQuickReplies(QuickRequest{LastMessage: message})

		assert.LessOrEqual(t, len(resp.Replies), 4, "message %q", message)
		assert.NotEmpty(t, resp.Replies)
	}
}

func TestConfidenceAtClamped(t *testing.T) {
	assert.InDelta(t, 0.7, confidenceAt(0.7, 0), 1e-9)
	assert.InDelta(t, 0.4, confidenceAt(0.6, 2), 1e-9)
	assert.Zero(t, confidenceAt(0.6, 10))
}

func TestBuildConversationWindow(t *testing.T) {
	svc := newTestService(t)

	messages := messagesFrom(
		[]string{"u1"},
		[]string{"one", "two", "three", "four", "five", "six", "seven"},
	)
	messages[6].SenderName = "Grace"

	conversation := svc.buildConversation(messages)

	// Capped at the configured window of 5, display name preferred.
	assert.Equal(t, "u1: three\nu1: four\nu1: five\nu1: six\nGrace: seven", conversation)
}

package reply

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"smartreply/app/config"
	"smartreply/app/service/generation"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

const (
	modelConfidenceStart    = 0.7
	quickConfidenceStart    = 0.8
	fallbackConfidenceStart = 0.6
	confidenceStep          = 0.1

	// Quick replies appended alongside generated suggestions.
	maxQuickReplies = 2
	// Options returned by the one-shot quick reply endpoint.
	maxQuickReplyOptions = 4

	modelVersion = "1.0.0"
)

// Backend produces raw reply candidates from a serialized conversation.
type Backend interface {
	Available() bool
	Generate(ctx context.Context, conversation string, count, maxLength int) []string
}

type Service struct {
	cfg     *config.Config
	backend Backend
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:     do.MustInvoke[*config.Config](di),
		backend: do.MustInvoke[*generation.Service](di),
	}, nil
}

// GenerateReplies runs the suggestion pipeline: model candidates when the
// backend is up, quick replies when requested, template fallback when both
// tiers came up empty. It always returns a response; every failure path
// degrades to a smaller or template-based result set.
func (s *Service) GenerateReplies(ctx context.Context, req Request) *Response {
	start := time.Now()

	conversation := s.buildConversation(req.Context.Messages)

	// The caller rejects empty contexts, but don't trust it.
	var lastContent string
	if len(req.Context.Messages) > 0 {
		lastContent = req.Context.Messages[len(req.Context.Messages)-1].Content
	}
	detectedIntent := DetectIntent(lastContent)

	var suggestions []Suggestion

	if s.backend.Available() {
		suggestions = append(suggestions, s.generateModelReplies(ctx, conversation, req)...)
	}

	if req.IncludeQuickReplies {
		suggestions = append(suggestions, s.quickReplySuggestions(detectedIntent, req.Tone)...)
	}

	if len(suggestions) == 0 {
		suggestions = s.fallbackSuggestions(detectedIntent, req.Tone, req.NumSuggestions)
	}

	suggestions = pie.SortStableUsing(suggestions, func(a, b Suggestion) bool {
		return a.Confidence > b.Confidence
	})
	if len(suggestions) > req.NumSuggestions {
		suggestions = suggestions[:req.NumSuggestions]
	}

	return &Response{
		Suggestions:      suggestions,
		ContextSummary:   summarizeContext(req.Context.Messages),
		ProcessingTimeMs: float64(time.Since(start).Microseconds()) / 1000,
		ModelVersion:     modelVersion,
	}
}

// GetQuickReplies is the one-shot form: intent plus up to four templates,
// falling back to the acknowledge set when the intent has none of its own.
func (s *Service) GetQuickReplies(req QuickRequest) *QuickResponse {
	intent := DetectIntent(req.LastMessage)

	templates := templatesOrFallback(intent)
	if len(templates) > maxQuickReplyOptions {
		templates = templates[:maxQuickReplyOptions]
	}

	return &QuickResponse{
		Replies: templates,
		Intent:  intent,
	}
}

func (s *Service) buildConversation(messages []Message) string {
	if len(messages) > s.cfg.Reply.MaxContextMessages {
		messages = messages[len(messages)-s.cfg.Reply.MaxContextMessages:]
	}

	lines := pie.Map(messages, func(msg Message) string {
		sender := msg.SenderName
		if sender == "" {
			sender = msg.SenderID
		}

		return fmt.Sprintf("%s: %s", sender, msg.Content)
	})

	return strings.Join(lines, "\n")
}

func (s *Service) generateModelReplies(ctx context.Context, conversation string, req Request) []Suggestion {
	candidates := s.backend.Generate(ctx, conversation, req.NumSuggestions, req.MaxLength)

	suggestions := make([]Suggestion, 0, len(candidates))

	for i, candidate := range candidates {
		suggestions = append(suggestions, Suggestion{
			Text:       candidate,
			Confidence: confidenceAt(modelConfidenceStart, i),
			// Candidates get their own intent, not the input's.
			Intent:       DetectIntent(candidate),
			Tone:         req.Tone,
			IsQuickReply: false,
		})
	}

	slog.Debug("Generated model replies",
		"count", len(suggestions),
		"requested", req.NumSuggestions)

	return suggestions
}

func (s *Service) quickReplySuggestions(intent Intent, tone Tone) []Suggestion {
	templates := TemplatesFor(intent)
	if len(templates) > maxQuickReplies {
		templates = templates[:maxQuickReplies]
	}

	suggestions := make([]Suggestion, 0, len(templates))

	for i, template := range templates {
		suggestions = append(suggestions, Suggestion{
			Text:         AdaptTone(template, tone),
			Confidence:   confidenceAt(quickConfidenceStart, i),
			Intent:       intent,
			Tone:         tone,
			IsQuickReply: true,
		})
	}

	return suggestions
}

func (s *Service) fallbackSuggestions(intent Intent, tone Tone, count int) []Suggestion {
	templates := templatesOrFallback(intent)
	if len(templates) > count {
		templates = templates[:count]
	}

	suggestions := make([]Suggestion, 0, len(templates))

	for i, template := range templates {
		suggestions = append(suggestions, Suggestion{
			Text:         AdaptTone(template, tone),
			Confidence:   confidenceAt(fallbackConfidenceStart, i),
			Intent:       intent,
			Tone:         tone,
			IsQuickReply: true,
		})
	}

	return suggestions
}

func summarizeContext(messages []Message) string {
	if len(messages) == 0 {
		return "No context available"
	}

	senders := pie.Unique(pie.Map(messages, func(msg Message) string {
		return msg.SenderID
	}))

	return fmt.Sprintf("Conversation with %d participant(s), %d recent message(s)",
		len(senders), len(messages))
}

func confidenceAt(start float64, index int) float64 {
	confidence := start - float64(index)*confidenceStep
	if confidence < 0 {
		return 0
	}

	return confidence
}

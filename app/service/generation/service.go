package generation

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"smartreply/app/config"
	"smartreply/app/util/metrics"

	_ "embed"

	"github.com/samber/do"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

//go:embed prompt_template.txt
var promptTemplate string

const (
	samplingTemperature = 0.7
	nucleusTopP         = 0.92
	repeatPenalty       = 1.3
	minCandidateLength  = 3
	loadPingTimeout     = 10 * time.Second
	requestTimeout      = 30 * time.Second
)

type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusReady         Status = "ready"
	StatusDegraded      Status = "degraded"
)

type Service struct {
	cfg *config.Config

	mu     sync.RWMutex
	llm    llms.Model
	status Status
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:    do.MustInvoke[*config.Config](di),
		status: StatusUninitialized,
	}, nil
}

// Load makes the one-time, best-effort attempt to bring the model up.
// It is called once before the service accepts traffic; a failure leaves
// the backend degraded for the process lifetime and is never retried.
func (s *Service) Load(ctx context.Context) Status {
	if s.cfg.Model.Token == "" || s.cfg.Model.Name == "" {
		slog.Warn("No reply model configured, using fallback templates")
		return s.transition(nil, StatusDegraded)
	}

	slog.Info("Loading reply model", "model", s.cfg.Model.Name)

	opts := []openai.Option{
		openai.WithToken(s.cfg.Model.Token),
		openai.WithModel(s.cfg.Model.Name),
		openai.WithHTTPClient(&http.Client{Timeout: requestTimeout}),
	}
	if s.cfg.Model.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(s.cfg.Model.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		slog.Warn("Failed to load reply model, using fallback templates", "error", err)
		return s.transition(nil, StatusDegraded)
	}

	pingCtx, cancel := context.WithTimeout(ctx, loadPingTimeout)
	defer cancel()

	if _, err = llms.GenerateFromSinglePrompt(pingCtx, llm, "ping", llms.WithMaxTokens(1)); err != nil {
		slog.Warn("Reply model is not reachable, using fallback templates", "error", err)
		return s.transition(nil, StatusDegraded)
	}

	slog.Info("Reply model loaded", "model", s.cfg.Model.Name)

	return s.transition(llm, StatusReady)
}

func (s *Service) transition(llm llms.Model, status Status) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.llm = llm
	s.status = status

	return status
}

func (s *Service) Available() bool {
	return s.Status() == StatusReady
}

func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status
}

// Generate samples count continuations of the serialized conversation.
// Any failure is logged and yields an empty candidate list; generation
// is never fatal to a request.
func (s *Service) Generate(ctx context.Context, conversation string, count, maxLength int) []string {
	s.mu.RLock()
	llm := s.llm
	s.mu.RUnlock()

	if llm == nil {
		return nil
	}

	prompt := strings.ReplaceAll(promptTemplate, "{conversation}", conversation)

	resp, err := llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		},
		llms.WithTemperature(samplingTemperature),
		llms.WithTopP(nucleusTopP),
		llms.WithFrequencyPenalty(repeatPenalty),
		llms.WithMaxTokens(maxLength),
		llms.WithCandidateCount(count),
	)
	if err != nil {
		metrics.GenerationFailures.Inc()
		slog.Error("Reply generation failed", "error", err)
		return nil
	}

	candidates := make([]string, 0, len(resp.Choices))

	for _, choice := range resp.Choices {
		text := strings.TrimSpace(choice.Content)

		// Some models echo the conversation back before continuing.
		text, _ = strings.CutPrefix(text, conversation)
		text = strings.TrimSpace(text)

		if len(text) <= minCandidateLength {
			continue
		}

		// Cleanup can consume the whole candidate (pure markup).
		text = cleanCandidate(text)
		if text == "" {
			continue
		}

		candidates = append(candidates, text)
	}

	return candidates
}

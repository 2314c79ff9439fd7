// Package intent turns a raw user message plus recent history into a
// structured request: one intent tag from a closed set and optional
// scoping filters. Two strategies implement the same interface, a regex
// pattern matcher and a model-driven JSON classifier, and every failure
// path degrades to free_talk instead of erroring.
package intent

import (
	"context"
	"log/slog"

	"airops/app/client/llm"

	"github.com/samber/do"
)

// Extractor is the pluggable classification strategy.
type Extractor interface {
	// Extract never fails: a message it cannot place comes back as
	// free_talk with absent filters.
	Extract(ctx context.Context, message, history string) Request
}

type Service struct {
	strategy Extractor
}

func New(di *do.Injector) (*Service, error) {
	clients := do.MustInvoke[*llm.Clients](di)

	var strategy Extractor
	if clients.Classify.Enabled() {
		strategy = NewModelExtractor(clients.Classify)
	} else {
		slog.Warn("no classification model configured, using pattern extraction only")
		strategy = NewPatternExtractor()
	}

	return &Service{strategy: strategy}, nil
}

func NewWithStrategy(strategy Extractor) *Service {
	return &Service{strategy: strategy}
}

func (s *Service) Extract(ctx context.Context, message, history string) (request Request) {
	// A missed intent degrades to conversation; it never aborts the
	// pipeline.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("intent extraction panicked, defaulting to free_talk", "panic", r)
			request = FreeTalkRequest()
		}
	}()

	return s.strategy.Extract(ctx, message, history)
}

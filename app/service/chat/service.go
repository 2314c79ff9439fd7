// Package chat runs the full message pipeline: language detection,
// intent extraction, bounded data fetch, deterministic digest, persona
// prompt, final completion. Every stage degrades instead of failing, so
// Process always returns a human-readable reply.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"airops/app/client/llm"
	"airops/app/service/digest"
	"airops/app/service/fetch"
	"airops/app/service/intent"
	"airops/app/service/persona"
	"airops/app/util/textlang"

	"github.com/samber/do"
)

// Meta describes how a reply was produced. It is diagnostic surface for
// the frontend, never part of the reply text itself.
type Meta struct {
	Intent   intent.Intent  `json:"intent"`
	Filters  intent.Filters `json:"filters"`
	Lang     textlang.Lang  `json:"lang"`
	Role     persona.Role   `json:"role"`
	Sources  []string       `json:"sources,omitempty"`
	Cached   bool           `json:"cached,omitempty"`
	Fallback bool           `json:"fallback,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type Service struct {
	intents  *intent.Service
	fetcher  *fetch.Service
	digester *digest.Service
	personas *persona.Service
	answer   llm.Completer
	history  *history
	replies  *replyCache
}

func New(di *do.Injector) (*Service, error) {
	clients := do.MustInvoke[*llm.Clients](di)

	return &Service{
		intents:  do.MustInvoke[*intent.Service](di),
		fetcher:  do.MustInvoke[*fetch.Service](di),
		digester: do.MustInvoke[*digest.Service](di),
		personas: do.MustInvoke[*persona.Service](di),
		answer:   clients.Answer,
		history:  &history{},
		replies:  newReplyCache(),
	}, nil
}

// NewWithParts wires an explicit set of collaborators, for tests.
func NewWithParts(intents *intent.Service, fetcher *fetch.Service, digester *digest.Service, personas *persona.Service, answer llm.Completer) *Service {
	return &Service{
		intents:  intents,
		fetcher:  fetcher,
		digester: digester,
		personas: personas,
		answer:   answer,
		history:  &history{},
		replies:  newReplyCache(),
	}
}

// Process turns one user message into a reply. It never returns an
// error: the worst outcome is a static apology with meta.Error set.
func (s *Service) Process(ctx context.Context, message string) (reply string, meta Meta) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("chat pipeline panicked", "panic", r)
			meta.Error = "internal error"
			reply = apology(meta.Lang)
		}
		slog.Info("chat processed",
			"intent", meta.Intent,
			"role", meta.Role,
			"lang", meta.Lang,
			"cached", meta.Cached,
			"fallback", meta.Fallback,
			"duration", time.Since(start))
	}()

	message = strings.TrimSpace(message)
	meta.Lang = textlang.Detect(message)

	if message == "" {
		meta.Intent = intent.FreeTalk
		meta.Role = persona.RoleFreeTalk
		return apology(meta.Lang), meta
	}

	if cachedReply, cachedMeta, ok := s.replies.get(message); ok {
		cachedMeta.Cached = true
		return cachedReply, cachedMeta
	}

	// The transcript rendered here deliberately excludes the current
	// message: the prompts quote it separately.
	transcript := s.history.render()

	req := s.intents.Extract(ctx, message, transcript)
	meta.Intent = req.Intent
	meta.Filters = req.Filters

	var digestText string
	if req.NeedsData() {
		bundle := s.fetcher.Fetch(ctx, req)
		meta.Sources = bundle.Sources
		digestText = s.digester.Summarize(req, bundle, meta.Lang)
	}

	role, prompt := s.personas.Compose(message, meta.Lang, req, digestText, transcript)
	meta.Role = role

	reply = s.answer.Complete(ctx, prompt)
	if llm.IsFailure(reply) {
		// Data intents fall back to the digest verbatim: the numbers
		// are already correct, only the phrasing is lost.
		meta.Fallback = true
		if req.NeedsData() && digestText != "" {
			reply = digestText
		} else {
			reply = fallbackGreeting(meta.Lang)
		}
	}

	s.history.add("user", message)
	s.history.add("ai", reply)
	s.replies.put(message, reply, meta)

	return reply, meta
}

func apology(lang textlang.Lang) string {
	if lang.IsArabic() {
		return "عذراً، حدث خطأ أثناء معالجة رسالتك. حاول مرة أخرى."
	}
	return "Sorry, something went wrong while processing your message. Please try again."
}

func fallbackGreeting(lang textlang.Lang) string {
	if lang.IsArabic() {
		return "أنا مساعد بيانات العمليات الأرضية. اسألني عن موظف أو رحلة أو قسم أو فترة زمنية وسأبحث لك في السجلات."
	}
	return "I am the ground-operations data assistant. Ask me about an employee, a flight, a department or a date range and I will look it up."
}

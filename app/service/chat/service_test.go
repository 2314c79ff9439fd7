package chat

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"airops/app/client/llm"
	"airops/app/client/rowstore"
	"airops/app/service/digest"
	"airops/app/service/fetch"
	"airops/app/service/intent"
	"airops/app/service/persona"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedCompleter struct {
	mu      sync.Mutex
	reply   string
	panics  bool
	prompts []string
}

func (c *scriptedCompleter) Complete(_ context.Context, prompt string) string {
	c.mu.Lock()
	c.prompts = append(c.prompts, prompt)
	c.mu.Unlock()
	if c.panics {
		panic("completer exploded")
	}
	return c.reply
}

func (c *scriptedCompleter) Enabled() bool { return true }

func (c *scriptedCompleter) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}

type recordingStore struct {
	mu    sync.Mutex
	calls int
	rows  map[string][]rowstore.Row
}

func (s *recordingStore) Select(_ context.Context, table string, _ []rowstore.Filter, _ int, _ *rowstore.Order) []rowstore.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.rows[table]
}

func newTestService(store *recordingStore, completer llm.Completer) *Service {
	return NewWithParts(
		intent.NewWithStrategy(intent.NewPatternExtractor()),
		fetch.NewWithStore(store),
		&digest.Service{},
		&persona.Service{},
		completer,
	)
}

func TestProcessDataIntentHappyPath(t *testing.T) {
	store := &recordingStore{rows: map[string][]rowstore.Row{
		"employee_absence": {
			{"Date": "2025-01-05", "Employee ID": "15013814"},
		},
	}}
	completer := &scriptedCompleter{reply: "One absence on 2025-01-05."}
	s := newTestService(store, completer)

	reply, meta := s.Process(context.Background(), "absence records for employee 15013814")

	assert.Equal(t, "One absence on 2025-01-05.", reply)
	assert.Equal(t, intent.AbsenceSummary, meta.Intent)
	assert.Equal(t, "15013814", meta.Filters.EmployeeID)
	assert.Equal(t, persona.RoleAnalyst, meta.Role)
	assert.Equal(t, []string{fetch.SourceAbsence}, meta.Sources)
	assert.False(t, meta.Fallback)

	// The prompt carries the digest so the model cannot stray from it.
	require.Equal(t, 1, completer.calls())
	assert.Contains(t, completer.prompts[0], "Total records: 1")
}

func TestProcessFallsBackToDigestVerbatim(t *testing.T) {
	store := &recordingStore{rows: map[string][]rowstore.Row{
		"employee_absence": {
			{"Date": "2025-01-05", "Employee ID": "15013814"},
		},
	}}
	completer := &scriptedCompleter{reply: llm.FailurePrefix + " completion request failed"}
	s := newTestService(store, completer)

	reply, meta := s.Process(context.Background(), "absence records for employee 15013814")

	expected := "Absence summary for employee 15013814:\n" +
		"- Total records: 1\n" +
		"- From 2025-01-05 to 2025-01-05"
	assert.Equal(t, expected, reply)
	assert.True(t, meta.Fallback)
	assert.Empty(t, meta.Error)
}

func TestProcessFreeTalkReadsNoData(t *testing.T) {
	store := &recordingStore{}
	completer := &scriptedCompleter{reply: "Good morning to you too!"}
	s := newTestService(store, completer)

	reply, meta := s.Process(context.Background(), "good morning, how are you?")

	assert.Equal(t, "Good morning to you too!", reply)
	assert.Equal(t, intent.FreeTalk, meta.Intent)
	assert.Equal(t, persona.RoleFreeTalk, meta.Role)
	assert.Zero(t, store.calls)
	assert.Empty(t, meta.Sources)
}

func TestProcessFreeTalkFallbackGreeting(t *testing.T) {
	store := &recordingStore{}
	completer := &scriptedCompleter{reply: ""}
	s := newTestService(store, completer)

	reply, meta := s.Process(context.Background(), "hello there")

	assert.True(t, meta.Fallback)
	assert.Contains(t, reply, "ground-operations data assistant")
}

func TestProcessCachesExactMessage(t *testing.T) {
	store := &recordingStore{}
	completer := &scriptedCompleter{reply: "Hi!"}
	s := newTestService(store, completer)

	first, firstMeta := s.Process(context.Background(), "hello")
	second, secondMeta := s.Process(context.Background(), "hello")

	assert.Equal(t, first, second)
	assert.False(t, firstMeta.Cached)
	assert.True(t, secondMeta.Cached)
	assert.Equal(t, 1, completer.calls())
}

func TestProcessCacheExpires(t *testing.T) {
	store := &recordingStore{}
	completer := &scriptedCompleter{reply: "Hi!"}
	s := newTestService(store, completer)

	now := time.Now()
	s.replies.now = func() time.Time { return now }

	s.Process(context.Background(), "hello")
	now = now.Add(replyTTL + time.Second)
	_, meta := s.Process(context.Background(), "hello")

	assert.False(t, meta.Cached)
	assert.Equal(t, 2, completer.calls())
}

func TestProcessEmptyMessage(t *testing.T) {
	store := &recordingStore{}
	completer := &scriptedCompleter{reply: "should not be called"}
	s := newTestService(store, completer)

	reply, meta := s.Process(context.Background(), "   ")

	assert.Contains(t, reply, "Sorry")
	assert.Equal(t, intent.FreeTalk, meta.Intent)
	assert.Zero(t, completer.calls())
}

func TestProcessRecoversFromPanic(t *testing.T) {
	store := &recordingStore{}
	completer := &scriptedCompleter{panics: true}
	s := newTestService(store, completer)

	reply, meta := s.Process(context.Background(), "hello")

	assert.Equal(t, "internal error", meta.Error)
	assert.Contains(t, reply, "Sorry")
}

func TestProcessArabicMessageGetsArabicFallback(t *testing.T) {
	store := &recordingStore{}
	completer := &scriptedCompleter{reply: ""}
	s := newTestService(store, completer)

	reply, meta := s.Process(context.Background(), "صباح الخير")

	assert.True(t, meta.Lang.IsArabic())
	assert.Contains(t, reply, "مساعد بيانات العمليات الأرضية")
}

func TestHistoryTrimsToCap(t *testing.T) {
	h := &history{}
	for i := 0; i < historyCap+10; i++ {
		h.add("user", "message")
	}

	lines := strings.Split(h.render(), "\n")
	assert.Len(t, lines, historyCap)
}

func TestHistoryRendersRoles(t *testing.T) {
	h := &history{}
	h.add("user", "hi")
	h.add("ai", "hello")

	assert.Equal(t, "user: hi\nai: hello", h.render())
}

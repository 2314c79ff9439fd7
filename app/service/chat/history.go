package chat

import (
	"fmt"
	"strings"
	"sync"
)

const historyCap = 15

// history is the shared rolling transcript. One instance serves every
// caller, so the assistant keeps a single conversational thread the way
// a shared control-room terminal would.
type history struct {
	mu    sync.Mutex
	lines []string
}

func (h *history) add(role, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lines = append(h.lines, fmt.Sprintf("%s: %s", role, text))
	if len(h.lines) > historyCap {
		h.lines = h.lines[len(h.lines)-historyCap:]
	}
}

func (h *history) render() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return strings.Join(h.lines, "\n")
}

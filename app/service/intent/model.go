package intent

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	_ "embed"

	"airops/app/client/llm"
	"airops/app/util/textlang"
)

//go:embed classify_prompt.txt
var classifyPromptTemplate string

//go:embed schema_summary.txt
var schemaSummary string

// ModelExtractor asks the completion capability to emit strict JSON. The
// pattern strategy runs first and its result is passed along as a helper
// hint, so the model sees the cheap signal before the free text.
type ModelExtractor struct {
	completer llm.Completer
	patterns  *PatternExtractor
}

var _ Extractor = (*ModelExtractor)(nil)

func NewModelExtractor(completer llm.Completer) *ModelExtractor {
	return &ModelExtractor{
		completer: completer,
		patterns:  NewPatternExtractor(),
	}
}

func (e *ModelExtractor) Extract(ctx context.Context, message, history string) Request {
	hint := e.patterns.Extract(ctx, message, history)

	hintJSON, err := json.Marshal(hint)
	if err != nil {
		hintJSON = []byte("{}")
	}
	if history == "" {
		history = "(no previous turns)"
	}

	values := map[string]string{
		"schema":  schemaSummary,
		"lang":    string(textlang.Detect(message)),
		"hint":    string(hintJSON),
		"history": history,
		"message": message,
	}

	prompt := classifyPromptTemplate
	for key, value := range values {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", value)
	}

	raw := e.completer.Complete(ctx, prompt)
	if llm.IsFailure(raw) {
		slog.Warn("intent classification unavailable, falling back to patterns", "reason", raw)
		return hint
	}

	request, ok := parseClassifierJSON(raw)
	if !ok {
		slog.Warn("intent classification returned malformed JSON, defaulting to free_talk", "raw", clip(raw, 200))
		return FreeTalkRequest()
	}

	return request
}

// parseClassifierJSON tolerates the usual model dressing: code fences,
// a "json" tag, prose around the object. It slices the outermost braces
// and decodes with UseNumber so identifier digits survive byte-for-byte.
func parseClassifierJSON(raw string) (Request, bool) {
	text := strings.TrimSpace(raw)
	text = strings.Trim(text, "`")
	text = strings.TrimSpace(strings.TrimPrefix(text, "json"))

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return Request{}, false
	}
	text = text[start : end+1]

	var wire struct {
		Intent  string         `json:"intent"`
		Filters map[string]any `json:"filters"`

		// Older classifier revisions emit the filters flat.
		EmployeeID   any    `json:"employee_id"`
		Department   string `json:"department"`
		FlightNumber any    `json:"flight_number"`
		Airline      string `json:"airline"`
		StartDate    string `json:"start_date"`
		EndDate      string `json:"end_date"`
	}

	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()
	if err := decoder.Decode(&wire); err != nil {
		return Request{}, false
	}

	filters := Filters{
		EmployeeID:   literalString(wire.EmployeeID),
		Department:   strings.TrimSpace(wire.Department),
		FlightNumber: literalString(wire.FlightNumber),
		Airline:      strings.TrimSpace(wire.Airline),
		StartDate:    strings.TrimSpace(wire.StartDate),
		EndDate:      strings.TrimSpace(wire.EndDate),
	}

	if wire.Filters != nil {
		nested := Filters{
			EmployeeID:   literalString(wire.Filters["employee_id"]),
			Department:   literalString(wire.Filters["department"]),
			FlightNumber: literalString(wire.Filters["flight_number"]),
			Airline:      literalString(wire.Filters["airline"]),
			StartDate:    literalString(wire.Filters["start_date"]),
			EndDate:      literalString(wire.Filters["end_date"]),
		}
		if nested.StartDate == "" {
			nested.StartDate = literalString(wire.Filters["date_from"])
		}
		if nested.EndDate == "" {
			nested.EndDate = literalString(wire.Filters["date_to"])
		}
		filters = mergeFilters(nested, filters)
	}

	return Request{
		Intent:  Normalize(wire.Intent),
		Filters: filters,
	}, true
}

// literalString renders a JSON scalar without numeric reinterpretation:
// json.Number keeps the digits exactly as the model wrote them.
func literalString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func mergeFilters(primary, fallback Filters) Filters {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	return Filters{
		EmployeeID:   pick(primary.EmployeeID, fallback.EmployeeID),
		Department:   pick(primary.Department, fallback.Department),
		FlightNumber: pick(primary.FlightNumber, fallback.FlightNumber),
		Airline:      pick(primary.Airline, fallback.Airline),
		StartDate:    pick(primary.StartDate, fallback.StartDate),
		EndDate:      pick(primary.EndDate, fallback.EndDate),
	}
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

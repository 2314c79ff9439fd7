package intent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternExtractorEmployeeID(t *testing.T) {
	e := NewPatternExtractor()

	req := e.Extract(context.Background(), "show overtime for employee 15013814", "")
	assert.Equal(t, OvertimeSummary, req.Intent)
	assert.Equal(t, "15013814", req.Filters.EmployeeID)
}

func TestPatternExtractorArabicEmployeeID(t *testing.T) {
	e := NewPatternExtractor()

	req := e.Extract(context.Background(), "كم ساعات العمل الإضافي للموظف 15013814؟", "")
	assert.Equal(t, OvertimeSummary, req.Intent)
	assert.Equal(t, "15013814", req.Filters.EmployeeID)
}

func TestPatternExtractorRejectsNineDigitRuns(t *testing.T) {
	e := NewPatternExtractor()

	req := e.Extract(context.Background(), "employee 123456789 overtime", "")
	assert.Empty(t, req.Filters.EmployeeID)
}

func TestPatternExtractorDepartmentBeatsAirline(t *testing.T) {
	e := NewPatternExtractor()

	// "FIC Saudia" is a department; the embedded "Saudia" must not also
	// surface as an airline.
	req := e.Extract(context.Background(), "absence summary for FIC Saudia", "")
	assert.Equal(t, AbsenceSummary, req.Intent)
	assert.Equal(t, "FIC Saudia", req.Filters.Department)
	assert.Empty(t, req.Filters.Airline)
}

func TestPatternExtractorFlightAndDateRange(t *testing.T) {
	e := NewPatternExtractor()

	req := e.Extract(context.Background(),
		"why was flight XY123 delayed from 2025-01-01 to 2025-01-31?", "")
	assert.Equal(t, FlightDelay, req.Intent)
	assert.Equal(t, "XY123", req.Filters.FlightNumber)
	assert.Equal(t, "2025-01-01", req.Filters.StartDate)
	assert.Equal(t, "2025-01-31", req.Filters.EndDate)
}

func TestPatternExtractorDefaultsToFreeTalk(t *testing.T) {
	e := NewPatternExtractor()

	req := e.Extract(context.Background(), "good morning, how are you today?", "")
	assert.Equal(t, FreeTalk, req.Intent)
	assert.True(t, req.Filters.Empty())
}

func TestNormalizeLegacySynonyms(t *testing.T) {
	assert.Equal(t, OvertimeSummary, Normalize("employee_overtime"))
	assert.Equal(t, EmployeeProfile, Normalize("employee_investigation"))
	assert.Equal(t, FlightDelay, Normalize("mgt_compliance"))
	assert.Equal(t, AirlineStats, Normalize("delay_statistics"))
	assert.Equal(t, FreeTalk, Normalize("general_chat"))
	assert.Equal(t, FreeTalk, Normalize("something_never_seen"))
	assert.Equal(t, SickLeaveSummary, Normalize(" Employee_SickLeave_Summary "))
}

func TestParseClassifierJSONPreservesDigits(t *testing.T) {
	// A numeric employee_id must survive byte-for-byte, not pass through
	// a float.
	raw := "```json\n{\"intent\": \"employee_overtime_summary\", \"filters\": {\"employee_id\": 15013814}}\n```"

	req, ok := parseClassifierJSON(raw)
	require.True(t, ok)
	assert.Equal(t, OvertimeSummary, req.Intent)
	assert.Equal(t, "15013814", req.Filters.EmployeeID)
}

func TestParseClassifierJSONFlatLegacyFields(t *testing.T) {
	raw := `{"intent": "employee_delays", "employee_id": "15013814", "start_date": "2025-01-01"}`

	req, ok := parseClassifierJSON(raw)
	require.True(t, ok)
	assert.Equal(t, DelaySummary, req.Intent)
	assert.Equal(t, "15013814", req.Filters.EmployeeID)
	assert.Equal(t, "2025-01-01", req.Filters.StartDate)
}

func TestParseClassifierJSONDateAliases(t *testing.T) {
	raw := `{"intent": "shift_report_summary", "filters": {"department": "TCC", "date_from": "2025-02-01", "date_to": "2025-02-28"}}`

	req, ok := parseClassifierJSON(raw)
	require.True(t, ok)
	assert.Equal(t, ShiftReport, req.Intent)
	assert.Equal(t, "TCC", req.Filters.Department)
	assert.Equal(t, "2025-02-01", req.Filters.StartDate)
	assert.Equal(t, "2025-02-28", req.Filters.EndDate)
}

func TestParseClassifierJSONMalformed(t *testing.T) {
	_, ok := parseClassifierJSON("I could not classify this message.")
	assert.False(t, ok)
}

func TestServiceRecoversFromPanickingStrategy(t *testing.T) {
	s := NewWithStrategy(panickingExtractor{})

	req := s.Extract(context.Background(), "anything", "")
	assert.Equal(t, FreeTalkRequest(), req)
}

type panickingExtractor struct{}

func (panickingExtractor) Extract(context.Context, string, string) Request {
	panic("boom")
}

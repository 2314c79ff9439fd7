package intent

import "strings"

// Intent is the classified purpose of a user message. The set is closed:
// anything unknown normalizes to FreeTalk.
type Intent string

const (
	EmployeeProfile   Intent = "employee_profile"
	AbsenceSummary    Intent = "employee_absence_summary"
	DelaySummary      Intent = "employee_delay_summary"
	OvertimeSummary   Intent = "employee_overtime_summary"
	SickLeaveSummary  Intent = "employee_sickleave_summary"
	FlightDelay       Intent = "flight_delay_summary"
	DepEmployeeDelay  Intent = "dep_employee_delay_summary"
	OperationalEvents Intent = "operational_event_summary"
	ShiftReport       Intent = "shift_report_summary"
	AirlineStats      Intent = "airline_flight_stats"
	FreeTalk          Intent = "free_talk"
)

// legacySynonyms maps intent tags emitted by older revisions of the
// classifier prompt onto the canonical set.
var legacySynonyms = map[string]Intent{
	"employee_overtime":          OvertimeSummary,
	"employee_delays":            DelaySummary,
	"employee_delay":             DelaySummary,
	"employee_absence":           AbsenceSummary,
	"employee_sickleave":         SickLeaveSummary,
	"employee_sick_leave_summary": SickLeaveSummary,
	"employee_investigation":     EmployeeProfile,
	"flight_delay_detail":        FlightDelay,
	"flight_analysis":            FlightDelay,
	"mgt_compliance":             FlightDelay,
	"delay_statistics":           AirlineStats,
	"airline_stats":              AirlineStats,
	"shift_stats":                ShiftReport,
	"general_chat":               FreeTalk,
	"general_search":             FreeTalk,
	"analytics_request":          FreeTalk,
}

// Normalize folds a raw tag onto the canonical intent set.
func Normalize(raw string) Intent {
	tag := strings.ToLower(strings.TrimSpace(raw))

	switch Intent(tag) {
	case EmployeeProfile, AbsenceSummary, DelaySummary, OvertimeSummary,
		SickLeaveSummary, FlightDelay, DepEmployeeDelay, OperationalEvents,
		ShiftReport, AirlineStats, FreeTalk:
		return Intent(tag)
	}

	if canonical, ok := legacySynonyms[tag]; ok {
		return canonical
	}

	return FreeTalk
}

// Filters carries the optional scoping values extracted from a message.
// EmployeeID and FlightNumber are preserved byte-for-byte: an identifier
// is a label, never a quantity.
type Filters struct {
	EmployeeID   string `json:"employee_id,omitempty"`
	Department   string `json:"department,omitempty"`
	FlightNumber string `json:"flight_number,omitempty"`
	Airline      string `json:"airline,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
}

func (f Filters) Empty() bool {
	return f == Filters{}
}

// Request is the structured form of one user message.
type Request struct {
	Intent  Intent  `json:"intent"`
	Filters Filters `json:"filters"`
}

// NeedsData reports whether this intent reads the row store at all.
func (r Request) NeedsData() bool {
	return r.Intent != FreeTalk
}

func FreeTalkRequest() Request {
	return Request{Intent: FreeTalk}
}

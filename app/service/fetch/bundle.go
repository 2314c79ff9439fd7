package fetch

import (
	"sync"

	"airops/app/service/tables"
)

// Logical data-source names, used as bundle keys in meta and for the
// per-source truncation flags.
const (
	SourceProfile      = "profile"
	SourceAbsence      = "absence"
	SourceDelays       = "delays"
	SourceOvertime     = "overtime"
	SourceSickLeaves   = "sick_leaves"
	SourceOpsEvents    = "ops_events"
	SourceFlightIssues = "flight_issues"
	SourceSGSRows      = "sgs_rows"
	SourceDEPRows      = "dep_rows"
	SourceShiftReports = "shift_reports"
)

// Bundle is the typed result of one fetch pass. Slices keep fetch order;
// nothing is mutated after conversion. Truncated marks sources whose row
// count hit the read cap, meaning the rows are a possibly-partial sample.
type Bundle struct {
	Profile      []tables.EmployeeMaster
	Absence      []tables.Absence
	Delays       []tables.PersonalDelay
	Overtime     []tables.Overtime
	SickLeaves   []tables.SickLeave
	OpsEvents    []tables.OperationalEvent
	FlightIssues []tables.MovementDelay
	SGSRows      []tables.GroundDelay
	DEPRows      []tables.MovementDelay
	ShiftReports []tables.ShiftReport

	Sources   []string
	Truncated map[string]bool

	mu sync.Mutex
}

func NewBundle() *Bundle {
	return &Bundle{
		Truncated: make(map[string]bool),
	}
}

func (b *Bundle) mark(source string, rows, limit int) {
	b.Sources = append(b.Sources, source)
	b.markTruncated(source, rows, limit)
}

// markTruncated is safe to call from the concurrent profile fan-out.
func (b *Bundle) markTruncated(source string, rows, limit int) {
	if limit > 0 && rows >= limit {
		b.mu.Lock()
		b.Truncated[source] = true
		b.mu.Unlock()
	}
}

// Empty reports whether no source returned any rows. That is a valid,
// summarizable state ("no data found"), not an error.
func (b *Bundle) Empty() bool {
	return len(b.Profile) == 0 &&
		len(b.Absence) == 0 &&
		len(b.Delays) == 0 &&
		len(b.Overtime) == 0 &&
		len(b.SickLeaves) == 0 &&
		len(b.OpsEvents) == 0 &&
		len(b.FlightIssues) == 0 &&
		len(b.SGSRows) == 0 &&
		len(b.DEPRows) == 0 &&
		len(b.ShiftReports) == 0
}

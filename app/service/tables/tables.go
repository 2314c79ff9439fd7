// Package tables defines typed schemas for the nine row-store tables and
// the single conversion boundary from the loosely-typed transport rows.
// Column names in the store are exact strings with spaces and mixed case;
// lookups are exact-first, with a case-insensitive "contains" fallback for
// near-matches. Past this boundary nothing touches a raw key again.
package tables

import (
	"strings"

	"airops/app/client/rowstore"
)

const (
	EmployeeMasterTable   = "employee_master_db"
	GroundDelayTable      = "sgs_flight_delay"
	MovementDelayTable    = "dep_flight_delay"
	OvertimeTable         = "employee_overtime"
	SickLeaveTable        = "employee_sick_leave"
	AbsenceTable          = "employee_absence"
	PersonalDelayTable    = "employee_delay"
	OperationalEventTable = "operational_event"
	ShiftReportTable      = "shift_report"
)

// Filter column names shared by the fetch dispatch.
const (
	ColEmployeeID      = "Employee ID"
	ColDepartment      = "Department"
	ColDate            = "Date"
	ColEventDate       = "Event Date"
	ColAirlines        = "Airlines"
	ColFlightNumber    = "Flight Number"
	ColDepartureFlight = "Departure Flight Number"
)

type EmployeeMaster struct {
	EmployeeID         string
	Name               string
	Gender             string
	Nationality        string
	HiringDate         string
	JobTitle           string
	ActualRole         string
	Grade              string
	Department         string
	PreviousDepartment string
	CurrentDepartment  string
	ActionType         string
	ActionDate         string
	ExitReason         string
}

type GroundDelay struct {
	Date         string
	Shift        string
	Airline      string
	FlightNumber string
	Destination  string
	Gate         string
	STD          string
	ATD          string
	DelayCode    string
}

type MovementDelay struct {
	Date                  string
	Shift                 string
	Department            string
	EmployeeID            string
	EmployeeName          string
	Airline               string
	ArrivalFlightNumber   string
	DepartureFlightNumber string
	ArrivalViolations     string
	DepartureViolations   string
}

type Overtime struct {
	EmployeeID       string
	EmployeeName     string
	Department       string
	NotificationDate string
	AssignmentDate   string
	AssignmentType   string
	AssignmentDays   string
	TotalHours       float64
	HasHours         bool
	AssignmentReason string
	DutyManagerID    string
	DutyManagerName  string
}

type SickLeave struct {
	Date         string
	Department   string
	EmployeeID   string
	EmployeeName string
	StartDate    string
	EndDate      string
}

type Absence struct {
	Date         string
	Department   string
	EmployeeID   string
	EmployeeName string
	Status       string
}

type PersonalDelay struct {
	Date         string
	Department   string
	EmployeeID   string
	EmployeeName string
	DelayMinutes int
	Reason       string
}

type OperationalEvent struct {
	Department         string
	EmployeeID         string
	EmployeeName       string
	EventDate          string
	EventType          string
	DisciplinaryAction string
}

type ShiftReport struct {
	Date       string
	Department string
	OnDuty     int
	NoShow     int
}

// FindKey returns the first column whose name contains part,
// case-insensitively. Used where the data keeps shifting the exact
// spelling of a column (notably the delay-minutes field).
func FindKey(row rowstore.Row, part string) (string, bool) {
	part = strings.ToLower(strings.TrimSpace(part))
	for key := range row {
		if strings.Contains(strings.ToLower(key), part) {
			return key, true
		}
	}
	return "", false
}

func field(row rowstore.Row, key string) string {
	return strings.TrimSpace(toString(rawField(row, key)))
}

// rawField looks a column up by its exact name first. Multi-word names
// additionally get the contains fallback; single-word names like "Date"
// stay exact, since a substring match would happily grab "Hiring Date".
func rawField(row rowstore.Row, key string) any {
	if value, ok := row[key]; ok {
		return value
	}
	if strings.Contains(key, " ") {
		if near, ok := FindKey(row, key); ok {
			return row[near]
		}
	}
	return nil
}

func EmployeeMasterFromRow(row rowstore.Row) EmployeeMaster {
	return EmployeeMaster{
		EmployeeID:         field(row, "Employee ID"),
		Name:               field(row, "Employee Name"),
		Gender:             field(row, "Gender"),
		Nationality:        field(row, "Nationality"),
		HiringDate:         field(row, "Hiring Date"),
		JobTitle:           field(row, "Job Title"),
		ActualRole:         field(row, "Actual Role"),
		Grade:              field(row, "Grade"),
		Department:         field(row, "Department"),
		PreviousDepartment: field(row, "Previous Department"),
		CurrentDepartment:  field(row, "Current Department"),
		ActionType:         field(row, "Employment Action Type"),
		ActionDate:         field(row, "Action Effective Date"),
		ExitReason:         field(row, "Exit Reason"),
	}
}

func GroundDelayFromRow(row rowstore.Row) GroundDelay {
	return GroundDelay{
		Date:         field(row, "Date"),
		Shift:        field(row, "Shift"),
		Airline:      field(row, "Airlines"),
		FlightNumber: field(row, "Flight Number"),
		Destination:  field(row, "Destination"),
		Gate:         field(row, "Gate"),
		STD:          field(row, "STD"),
		ATD:          field(row, "ATD"),
		DelayCode:    field(row, "Delay Code"),
	}
}

func MovementDelayFromRow(row rowstore.Row) MovementDelay {
	return MovementDelay{
		Date:                  field(row, "Date"),
		Shift:                 field(row, "Shift"),
		Department:            field(row, "Department"),
		EmployeeID:            field(row, "Employee ID"),
		EmployeeName:          field(row, "Employee Name"),
		Airline:               field(row, "Airlines"),
		ArrivalFlightNumber:   field(row, "Arrival Flight Number"),
		DepartureFlightNumber: field(row, "Departure Flight Number"),
		ArrivalViolations:     field(row, "Arrival Violations"),
		DepartureViolations:   field(row, "Departure Violations"),
	}
}

func OvertimeFromRow(row rowstore.Row) Overtime {
	hours, hasHours := ParseHours(rawField(row, "Total Hours"))

	return Overtime{
		EmployeeID:       field(row, "Employee ID"),
		EmployeeName:     field(row, "Employee Name"),
		Department:       field(row, "Department"),
		NotificationDate: field(row, "Notification Date"),
		AssignmentDate:   field(row, "Assignment Date"),
		AssignmentType:   field(row, "Assignment Type"),
		AssignmentDays:   field(row, "Assignment Days"),
		TotalHours:       hours,
		HasHours:         hasHours,
		AssignmentReason: field(row, "Assignment Reason"),
		DutyManagerID:    field(row, "Duty Manager ID"),
		DutyManagerName:  field(row, "Duty Manager Name"),
	}
}

func SickLeaveFromRow(row rowstore.Row) SickLeave {
	return SickLeave{
		Date:         field(row, "Date"),
		Department:   field(row, "Department"),
		EmployeeID:   field(row, "Employee ID"),
		EmployeeName: field(row, "Employee Name"),
		StartDate:    field(row, "Sick leave start date"),
		EndDate:      field(row, "Sick leave end date"),
	}
}

func AbsenceFromRow(row rowstore.Row) Absence {
	return Absence{
		Date:         field(row, "Date"),
		Department:   field(row, "Department"),
		EmployeeID:   field(row, "Employee ID"),
		EmployeeName: field(row, "Employee Name"),
		Status:       field(row, "Absence Notification Status"),
	}
}

func PersonalDelayFromRow(row rowstore.Row) PersonalDelay {
	// The delay column drifts between exports ("Delay Minutes",
	// "delay_minutes", ...): locate anything containing "delay minutes",
	// then anything containing "delay".
	var delayValue any
	if key, ok := FindKey(row, "delay minutes"); ok {
		delayValue = row[key]
	} else if key, ok := FindKey(row, "delay"); ok {
		delayValue = row[key]
	}

	return PersonalDelay{
		Date:         field(row, "Date"),
		Department:   field(row, "Department"),
		EmployeeID:   field(row, "Employee ID"),
		EmployeeName: field(row, "Employee Name"),
		DelayMinutes: ParseDelayMinutes(delayValue),
		Reason:       field(row, "Reason for Delay"),
	}
}

func OperationalEventFromRow(row rowstore.Row) OperationalEvent {
	return OperationalEvent{
		Department:         field(row, "Department"),
		EmployeeID:         field(row, "Employee ID"),
		EmployeeName:       field(row, "Employee Name"),
		EventDate:          field(row, "Event Date"),
		EventType:          field(row, "Event Type"),
		DisciplinaryAction: field(row, "Disciplinary Action"),
	}
}

func ShiftReportFromRow(row rowstore.Row) ShiftReport {
	return ShiftReport{
		Date:       field(row, "Date"),
		Department: field(row, "Department"),
		OnDuty:     ParseCount(rawField(row, "On Duty")),
		NoShow:     ParseCount(rawField(row, "No Show")),
	}
}

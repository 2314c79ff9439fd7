// Package fetch decides which tables serve an intent and issues the
// bounded row-store reads. Every read cap is a deliberate truncation, not
// a correctness guarantee: the summarizer treats capped sources as
// partial samples. The fetcher itself never fails, an unreachable store
// shows up as an empty bundle.
package fetch

import (
	"context"

	"airops/app/client/rowstore"
	"airops/app/service/intent"
	"airops/app/service/tables"

	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const (
	defaultCap = 1000
	depCap     = 2000
	airlineCap = 5000
)

var dateAsc = &rowstore.Order{Column: tables.ColDate, Ascending: true}

type Service struct {
	store rowstore.Selector
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		store: do.MustInvoke[*rowstore.Client](di),
	}, nil
}

func NewWithStore(store rowstore.Selector) *Service {
	return &Service{store: store}
}

func (s *Service) Fetch(ctx context.Context, req intent.Request) *Bundle {
	bundle := NewBundle()
	f := req.Filters

	switch req.Intent {
	case intent.FreeTalk:
		// no reads at all

	case intent.EmployeeProfile:
		s.fetchProfile(ctx, f, bundle)

	case intent.AbsenceSummary:
		rows := s.store.Select(ctx, tables.AbsenceTable,
			scopedFilters(f, tables.ColDate, true), defaultCap, dateAsc)
		for _, row := range rows {
			bundle.Absence = append(bundle.Absence, tables.AbsenceFromRow(row))
		}
		bundle.mark(SourceAbsence, len(rows), defaultCap)

	case intent.DelaySummary:
		rows := s.store.Select(ctx, tables.PersonalDelayTable,
			scopedFilters(f, tables.ColDate, true), defaultCap, dateAsc)
		for _, row := range rows {
			bundle.Delays = append(bundle.Delays, tables.PersonalDelayFromRow(row))
		}
		bundle.mark(SourceDelays, len(rows), defaultCap)

	case intent.OvertimeSummary:
		rows := s.store.Select(ctx, tables.OvertimeTable,
			scopedFilters(f, "", false), defaultCap, nil)
		for _, row := range rows {
			bundle.Overtime = append(bundle.Overtime, tables.OvertimeFromRow(row))
		}
		bundle.mark(SourceOvertime, len(rows), defaultCap)

	case intent.SickLeaveSummary:
		rows := s.store.Select(ctx, tables.SickLeaveTable,
			scopedFilters(f, "", false), defaultCap, nil)
		for _, row := range rows {
			bundle.SickLeaves = append(bundle.SickLeaves, tables.SickLeaveFromRow(row))
		}
		bundle.mark(SourceSickLeaves, len(rows), defaultCap)

	case intent.OperationalEvents:
		rows := s.store.Select(ctx, tables.OperationalEventTable,
			scopedFilters(f, tables.ColEventDate, true),
			defaultCap, &rowstore.Order{Column: tables.ColEventDate, Ascending: true})
		for _, row := range rows {
			bundle.OpsEvents = append(bundle.OpsEvents, tables.OperationalEventFromRow(row))
		}
		bundle.mark(SourceOpsEvents, len(rows), defaultCap)

	case intent.FlightDelay:
		s.fetchFlightDelay(ctx, f, bundle)

	case intent.DepEmployeeDelay:
		var filters []rowstore.Filter
		if f.EmployeeID != "" {
			filters = append(filters, rowstore.Eq(tables.ColEmployeeID, f.EmployeeID))
		}
		if f.Department != "" {
			filters = append(filters, rowstore.Eq(tables.ColDepartment, f.Department))
		}
		if f.Airline != "" {
			filters = append(filters, rowstore.Eq(tables.ColAirlines, f.Airline))
		}
		rows := s.store.Select(ctx, tables.MovementDelayTable, filters, depCap, dateAsc)
		for _, row := range rows {
			bundle.DEPRows = append(bundle.DEPRows, tables.MovementDelayFromRow(row))
		}
		bundle.mark(SourceDEPRows, len(rows), depCap)

	case intent.ShiftReport:
		var filters []rowstore.Filter
		if f.Department != "" {
			filters = append(filters, rowstore.Eq(tables.ColDepartment, f.Department))
		}
		filters = appendDateRange(filters, tables.ColDate, f)
		rows := s.store.Select(ctx, tables.ShiftReportTable, filters, defaultCap, nil)
		for _, row := range rows {
			bundle.ShiftReports = append(bundle.ShiftReports, tables.ShiftReportFromRow(row))
		}
		bundle.mark(SourceShiftReports, len(rows), defaultCap)

	case intent.AirlineStats:
		rows := s.store.Select(ctx, tables.GroundDelayTable, nil, airlineCap, nil)
		for _, row := range rows {
			bundle.SGSRows = append(bundle.SGSRows, tables.GroundDelayFromRow(row))
		}
		bundle.mark(SourceSGSRows, len(rows), airlineCap)
	}

	return bundle
}

// fetchProfile is the richest fan-out: the master record plus all six
// employee-linked tables. The reads are independent, so they run
// concurrently; the summarizer only ever sees the completed bundle.
func (s *Service) fetchProfile(ctx context.Context, f intent.Filters, bundle *Bundle) {
	var employeeScope []rowstore.Filter
	if f.EmployeeID != "" {
		employeeScope = []rowstore.Filter{rowstore.Eq(tables.ColEmployeeID, f.EmployeeID)}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows := s.store.Select(ctx, tables.EmployeeMasterTable, employeeScope, 1, nil)
		for _, row := range rows {
			bundle.Profile = append(bundle.Profile, tables.EmployeeMasterFromRow(row))
		}
		return nil
	})
	g.Go(func() error {
		rows := s.store.Select(ctx, tables.OvertimeTable, employeeScope, defaultCap, nil)
		for _, row := range rows {
			bundle.Overtime = append(bundle.Overtime, tables.OvertimeFromRow(row))
		}
		bundle.markTruncated(SourceOvertime, len(rows), defaultCap)
		return nil
	})
	g.Go(func() error {
		rows := s.store.Select(ctx, tables.SickLeaveTable, employeeScope, defaultCap, nil)
		for _, row := range rows {
			bundle.SickLeaves = append(bundle.SickLeaves, tables.SickLeaveFromRow(row))
		}
		bundle.markTruncated(SourceSickLeaves, len(rows), defaultCap)
		return nil
	})
	g.Go(func() error {
		rows := s.store.Select(ctx, tables.AbsenceTable, employeeScope, defaultCap, dateAsc)
		for _, row := range rows {
			bundle.Absence = append(bundle.Absence, tables.AbsenceFromRow(row))
		}
		bundle.markTruncated(SourceAbsence, len(rows), defaultCap)
		return nil
	})
	g.Go(func() error {
		rows := s.store.Select(ctx, tables.PersonalDelayTable, employeeScope, defaultCap, dateAsc)
		for _, row := range rows {
			bundle.Delays = append(bundle.Delays, tables.PersonalDelayFromRow(row))
		}
		bundle.markTruncated(SourceDelays, len(rows), defaultCap)
		return nil
	})
	g.Go(func() error {
		rows := s.store.Select(ctx, tables.MovementDelayTable, employeeScope, depCap, dateAsc)
		for _, row := range rows {
			bundle.FlightIssues = append(bundle.FlightIssues, tables.MovementDelayFromRow(row))
		}
		bundle.markTruncated(SourceFlightIssues, len(rows), depCap)
		return nil
	})
	g.Go(func() error {
		rows := s.store.Select(ctx, tables.OperationalEventTable, employeeScope, defaultCap,
			&rowstore.Order{Column: tables.ColEventDate, Ascending: true})
		for _, row := range rows {
			bundle.OpsEvents = append(bundle.OpsEvents, tables.OperationalEventFromRow(row))
		}
		bundle.markTruncated(SourceOpsEvents, len(rows), defaultCap)
		return nil
	})

	_ = g.Wait()

	bundle.Sources = append(bundle.Sources,
		SourceProfile, SourceOvertime, SourceSickLeaves, SourceAbsence,
		SourceDelays, SourceFlightIssues, SourceOpsEvents)
}

// fetchFlightDelay reads the ground-service and movement-control tables
// in parallel sequences that are never merged: their schemas differ.
func (s *Service) fetchFlightDelay(ctx context.Context, f intent.Filters, bundle *Bundle) {
	var sgsFilters []rowstore.Filter
	if f.FlightNumber != "" {
		sgsFilters = append(sgsFilters, rowstore.Eq(tables.ColFlightNumber, f.FlightNumber))
	} else if f.Airline != "" {
		sgsFilters = append(sgsFilters, rowstore.Eq(tables.ColAirlines, f.Airline))
	}
	sgsFilters = appendDateRange(sgsFilters, tables.ColDate, f)

	sgsRows := s.store.Select(ctx, tables.GroundDelayTable, sgsFilters, defaultCap, dateAsc)
	for _, row := range sgsRows {
		bundle.SGSRows = append(bundle.SGSRows, tables.GroundDelayFromRow(row))
	}
	bundle.mark(SourceSGSRows, len(sgsRows), defaultCap)

	// Movement control keys flights by departure number.
	var depFilters []rowstore.Filter
	if f.FlightNumber != "" {
		depFilters = append(depFilters, rowstore.Eq(tables.ColDepartureFlight, f.FlightNumber))
	} else if f.Airline != "" {
		depFilters = append(depFilters, rowstore.Eq(tables.ColAirlines, f.Airline))
	}
	depFilters = appendDateRange(depFilters, tables.ColDate, f)

	depRows := s.store.Select(ctx, tables.MovementDelayTable, depFilters, defaultCap, dateAsc)
	for _, row := range depRows {
		bundle.DEPRows = append(bundle.DEPRows, tables.MovementDelayFromRow(row))
	}
	bundle.mark(SourceDEPRows, len(depRows), defaultCap)
}

// scopedFilters applies the uniform precedence employee id > department:
// when both are present the employee id wins. An empty result means an
// unscoped, global read, which is still issued, never refused.
func scopedFilters(f intent.Filters, dateColumn string, dated bool) []rowstore.Filter {
	var filters []rowstore.Filter

	switch {
	case f.EmployeeID != "":
		filters = append(filters, rowstore.Eq(tables.ColEmployeeID, f.EmployeeID))
	case f.Department != "":
		filters = append(filters, rowstore.Eq(tables.ColDepartment, f.Department))
	}

	if dated {
		filters = appendDateRange(filters, dateColumn, f)
	}

	return filters
}

func appendDateRange(filters []rowstore.Filter, column string, f intent.Filters) []rowstore.Filter {
	if f.StartDate != "" {
		filters = append(filters, rowstore.Gte(column, f.StartDate))
	}
	if f.EndDate != "" {
		filters = append(filters, rowstore.Lte(column, f.EndDate))
	}
	return filters
}

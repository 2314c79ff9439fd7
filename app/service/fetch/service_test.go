package fetch

import (
	"context"
	"sync"
	"testing"

	"airops/app/client/rowstore"
	"airops/app/service/intent"
	"airops/app/service/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCall struct {
	table   string
	filters []rowstore.Filter
	limit   int
}

type fakeStore struct {
	mu    sync.Mutex
	calls []fakeCall
	rows  map[string][]rowstore.Row
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string][]rowstore.Row)}
}

func (s *fakeStore) Select(_ context.Context, table string, filters []rowstore.Filter, limit int, _ *rowstore.Order) []rowstore.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, fakeCall{table: table, filters: filters, limit: limit})
	return s.rows[table]
}

func (s *fakeStore) callsFor(table string) []fakeCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []fakeCall
	for _, c := range s.calls {
		if c.table == table {
			out = append(out, c)
		}
	}
	return out
}

func TestFetchFreeTalkReadsNothing(t *testing.T) {
	store := newFakeStore()
	s := NewWithStore(store)

	bundle := s.Fetch(context.Background(), intent.FreeTalkRequest())

	assert.Empty(t, store.calls)
	assert.True(t, bundle.Empty())
	assert.Empty(t, bundle.Sources)
}

func TestFetchAbsenceEmployeeWinsOverDepartment(t *testing.T) {
	store := newFakeStore()
	s := NewWithStore(store)

	s.Fetch(context.Background(), intent.Request{
		Intent: intent.AbsenceSummary,
		Filters: intent.Filters{
			EmployeeID: "15013814",
			Department: "TCC",
			StartDate:  "2025-01-01",
			EndDate:    "2025-01-31",
		},
	})

	calls := store.callsFor(tables.AbsenceTable)
	require.Len(t, calls, 1)

	filters := calls[0].filters
	require.Len(t, filters, 3)
	assert.Equal(t, rowstore.Eq(tables.ColEmployeeID, "15013814"), filters[0])
	assert.Equal(t, rowstore.Gte(tables.ColDate, "2025-01-01"), filters[1])
	assert.Equal(t, rowstore.Lte(tables.ColDate, "2025-01-31"), filters[2])
}

func TestFetchAbsenceUnscopedIsStillIssued(t *testing.T) {
	store := newFakeStore()
	s := NewWithStore(store)

	s.Fetch(context.Background(), intent.Request{Intent: intent.AbsenceSummary})

	calls := store.callsFor(tables.AbsenceTable)
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].filters)
}

func TestFetchFlightDelayQueriesBothFamilies(t *testing.T) {
	store := newFakeStore()
	store.rows[tables.GroundDelayTable] = []rowstore.Row{
		{"Date": "2025-01-02", "Flight Number": "XY123"},
	}
	store.rows[tables.MovementDelayTable] = []rowstore.Row{
		{"Date": "2025-01-02", "Departure Flight Number": "XY123"},
		{"Date": "2025-01-03", "Departure Flight Number": "XY123"},
	}
	s := NewWithStore(store)

	bundle := s.Fetch(context.Background(), intent.Request{
		Intent:  intent.FlightDelay,
		Filters: intent.Filters{FlightNumber: "XY123"},
	})

	sgsCalls := store.callsFor(tables.GroundDelayTable)
	require.Len(t, sgsCalls, 1)
	assert.Equal(t, rowstore.Eq(tables.ColFlightNumber, "XY123"), sgsCalls[0].filters[0])

	depCalls := store.callsFor(tables.MovementDelayTable)
	require.Len(t, depCalls, 1)
	assert.Equal(t, rowstore.Eq(tables.ColDepartureFlight, "XY123"), depCalls[0].filters[0])

	// The two families stay separate in the bundle.
	assert.Len(t, bundle.SGSRows, 1)
	assert.Len(t, bundle.DEPRows, 2)
	assert.Equal(t, []string{SourceSGSRows, SourceDEPRows}, bundle.Sources)
}

func TestFetchProfileFansOutToAllEmployeeTables(t *testing.T) {
	store := newFakeStore()
	store.rows[tables.EmployeeMasterTable] = []rowstore.Row{
		{"Employee ID": "15013814", "Employee Name": "A. Example"},
	}
	s := NewWithStore(store)

	bundle := s.Fetch(context.Background(), intent.Request{
		Intent:  intent.EmployeeProfile,
		Filters: intent.Filters{EmployeeID: "15013814"},
	})

	for _, table := range []string{
		tables.EmployeeMasterTable,
		tables.OvertimeTable,
		tables.SickLeaveTable,
		tables.AbsenceTable,
		tables.PersonalDelayTable,
		tables.MovementDelayTable,
		tables.OperationalEventTable,
	} {
		calls := store.callsFor(table)
		require.Len(t, calls, 1, "table %s", table)
		require.NotEmpty(t, calls[0].filters, "table %s", table)
		assert.Equal(t, rowstore.Eq(tables.ColEmployeeID, "15013814"), calls[0].filters[0], "table %s", table)
	}

	require.Len(t, bundle.Profile, 1)
	assert.Equal(t, "15013814", bundle.Profile[0].EmployeeID)
	assert.Len(t, bundle.Sources, 7)
}

func TestFetchDepDelayCombinesScopes(t *testing.T) {
	store := newFakeStore()
	s := NewWithStore(store)

	s.Fetch(context.Background(), intent.Request{
		Intent: intent.DepEmployeeDelay,
		Filters: intent.Filters{
			Department: "FIC Saudia",
			Airline:    "Saudia",
		},
	})

	calls := store.callsFor(tables.MovementDelayTable)
	require.Len(t, calls, 1)
	assert.Equal(t, depCap, calls[0].limit)
	assert.Equal(t, []rowstore.Filter{
		rowstore.Eq(tables.ColDepartment, "FIC Saudia"),
		rowstore.Eq(tables.ColAirlines, "Saudia"),
	}, calls[0].filters)
}

func TestFetchAirlineStatsIsUnfiltered(t *testing.T) {
	store := newFakeStore()
	s := NewWithStore(store)

	s.Fetch(context.Background(), intent.Request{Intent: intent.AirlineStats})

	calls := store.callsFor(tables.GroundDelayTable)
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].filters)
	assert.Equal(t, airlineCap, calls[0].limit)
}

func TestBundleTruncationFlag(t *testing.T) {
	store := newFakeStore()
	rows := make([]rowstore.Row, defaultCap)
	for i := range rows {
		rows[i] = rowstore.Row{"Date": "2025-01-01"}
	}
	store.rows[tables.AbsenceTable] = rows
	s := NewWithStore(store)

	bundle := s.Fetch(context.Background(), intent.Request{Intent: intent.AbsenceSummary})

	assert.True(t, bundle.Truncated[SourceAbsence])
}

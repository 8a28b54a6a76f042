package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/service/availability"
	"github.com/m04kA/SMC-TableService/internal/testutil"
	"github.com/m04kA/SMC-TableService/pkg/types"
)

type nopConflicts struct{}

func (nopConflicts) IncAvailabilityConflict() {}

type searchMetrics struct {
	found, none map[string]int
}

func newSearchMetrics() *searchMetrics {
	return &searchMetrics{found: map[string]int{}, none: map[string]int{}}
}

func (m *searchMetrics) IncSlotSearch(kind string, found bool) {
	if found {
		m.found[kind]++
		return
	}
	m.none[kind]++
}

var today = testutil.Date(2025, 6, 10)

func newSearcher(store *testutil.Store, now time.Time) (*Searcher, *searchMetrics) {
	checker := availability.NewChecker(store.Reservations(), store.Tables(), nopConflicts{}, testutil.NopLogger{})
	m := newSearchMetrics()
	s := NewSearcher(checker, m, testutil.NopLogger{}).WithTimeProvider(testutil.FixedClock{T: now})
	return s, m
}

// bookWholeDay занимает стол на весь день, кроме окон из free (пары начало/конец в минутах)
func bookWholeDay(store *testutil.Store, tableID int64, date time.Time, free ...[2]int) {
	cursor := domain.GridStartMinutes
	windows := append(free, [2]int{domain.GridCloseMinutes, domain.GridCloseMinutes})
	for _, w := range windows {
		for cursor < w[0] {
			dur := w[0] - cursor
			if dur > domain.MaxDurationMinutes {
				dur = domain.MaxDurationMinutes
			}
			start, _ := types.NewTimeStringFromMinutes(cursor)
			store.AddReservation(tableID, date, start, dur, domain.ReservationConfirmed)
			cursor += dur
		}
		cursor = w[1]
	}
}

func TestFindBestSlot_OnlyOneWindowLeft(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 2, "Hall", domain.TableFree)
	store.AddTable(2, 4, "Hall", domain.TableFree)
	store.AddTable(7, 6, "Patio", domain.TableFree)
	bookWholeDay(store, 1, today)
	bookWholeDay(store, 2, today)
	bookWholeDay(store, 7, today, [2]int{14 * 60, 15 * 60})

	searcher, m := newSearcher(store, testutil.At(2025, 6, 10, 9, 0))

	got, err := searcher.FindBestSlot(context.Background(), BestSlotQuery{
		StartDate:       today,
		Guests:          2,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Date.Equal(today))
	assert.Equal(t, types.TimeString("14:00"), got.StartTime)
	require.Len(t, got.Tables, 1)
	assert.Equal(t, int64(7), got.BestTable().ID)
	assert.Equal(t, 1, m.found[kindBest])
}

func TestFindBestSlot_TodayRespectsGrace(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Hall", domain.TableFree)

	tests := []struct {
		name string
		now  time.Time
		want types.TimeString
	}{
		{name: "before opening", now: testutil.At(2025, 6, 10, 8, 0), want: "10:00"},
		{name: "exact grid point is skipped", now: testutil.At(2025, 6, 10, 12, 0), want: "12:30"},
		{name: "between grid points", now: testutil.At(2025, 6, 10, 12, 7), want: "12:30"},
		{name: "grace lands on grid point", now: testutil.At(2025, 6, 10, 12, 14), want: "12:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher, _ := newSearcher(store, tt.now)

			got, err := searcher.FindBestSlot(context.Background(), BestSlotQuery{
				StartDate:       today,
				Guests:          2,
				DurationMinutes: 60,
			})
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, got.Date.Equal(today))
			assert.Equal(t, tt.want, got.StartTime)

			start, _ := got.StartTime.Minutes()
			nowMinutes := tt.now.Hour()*60 + tt.now.Minute()
			assert.Greater(t, start, nowMinutes+domain.BestSlotGraceMinutes)
		})
	}
}

func TestFindBestSlot_LateEveningMovesToNextDay(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Hall", domain.TableFree)

	searcher, _ := newSearcher(store, testutil.At(2025, 6, 10, 22, 40))

	got, err := searcher.FindBestSlot(context.Background(), BestSlotQuery{
		StartDate:       today,
		Guests:          2,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Date.Equal(today.AddDate(0, 0, 1)))
	assert.Equal(t, types.TimeString("10:00"), got.StartTime)
}

func TestFindBestSlot_PastDatesSkipped(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Hall", domain.TableFree)

	searcher, _ := newSearcher(store, testutil.At(2025, 6, 10, 9, 0))

	got, err := searcher.FindBestSlot(context.Background(), BestSlotQuery{
		StartDate:       today.AddDate(0, 0, -3),
		Guests:          2,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Date.Equal(today))
	assert.Equal(t, types.TimeString("10:00"), got.StartTime)
}

func TestFindBestSlot_FutureDayStartsAtOpening(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Hall", domain.TableFree)
	tomorrow := today.AddDate(0, 0, 1)
	store.AddReservation(1, tomorrow, "10:00", 30, domain.ReservationConfirmed)

	searcher, _ := newSearcher(store, testutil.At(2025, 6, 10, 21, 0))

	got, err := searcher.FindBestSlot(context.Background(), BestSlotQuery{
		StartDate:       tomorrow,
		Guests:          2,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, types.TimeString("10:30"), got.StartTime)
}

func TestFindBestSlot_NoneWithinHorizon(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 2, "Hall", domain.TableFree)
	store.AddTable(2, 8, "Hall", domain.TableMaintenance)

	searcher, m := newSearcher(store, testutil.At(2025, 6, 10, 9, 0))

	got, err := searcher.FindBestSlot(context.Background(), BestSlotQuery{
		StartDate:       today,
		Guests:          6,
		DurationMinutes: 60,
		HorizonDays:     3,
	})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, m.none[kindBest])
}

func TestFindBestSlot_InvalidQuery(t *testing.T) {
	searcher, _ := newSearcher(testutil.NewStore(), testutil.At(2025, 6, 10, 9, 0))
	ctx := context.Background()

	tests := []struct {
		name string
		q    BestSlotQuery
	}{
		{name: "no guests", q: BestSlotQuery{StartDate: today, DurationMinutes: 60}},
		{name: "duration too short", q: BestSlotQuery{StartDate: today, Guests: 2, DurationMinutes: 10}},
		{name: "duration too long", q: BestSlotQuery{StartDate: today, Guests: 2, DurationMinutes: 240}},
		{name: "no date", q: BestSlotQuery{Guests: 2, DurationMinutes: 60}},
		{name: "horizon too large", q: BestSlotQuery{StartDate: today, Guests: 2, DurationMinutes: 60, HorizonDays: 91}},
		{name: "negative horizon", q: BestSlotQuery{StartDate: today, Guests: 2, DurationMinutes: 60, HorizonDays: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := searcher.FindBestSlot(ctx, tt.q)
			assert.ErrorIs(t, err, ErrInvalidQuery)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestFindBestSlot_StorageError(t *testing.T) {
	store := testutil.NewStore()
	store.Err = errors.New("connection reset")

	searcher, _ := newSearcher(store, testutil.At(2025, 6, 10, 9, 0))

	_, err := searcher.FindBestSlot(context.Background(), BestSlotQuery{
		StartDate:       today,
		Guests:          2,
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestFindBestSlotForEdit_PrefersCurrentTable(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 2, "Hall", domain.TableFree)
	store.AddTable(5, 6, "Patio", domain.TableReserved)
	own := store.AddReservation(5, today, "10:00", 120, domain.ReservationConfirmed)

	searcher, m := newSearcher(store, testutil.At(2025, 6, 10, 8, 0))

	got, err := searcher.FindBestSlotForEdit(context.Background(), EditSlotQuery{
		BestSlotQuery:  BestSlotQuery{StartDate: today, Guests: 2, DurationMinutes: 90},
		ReservationID:  own,
		CurrentTableID: 5,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, types.TimeString("10:00"), got.StartTime)
	require.Len(t, got.Tables, 1)
	assert.Equal(t, int64(5), got.Tables[0].ID)
	assert.Equal(t, 1, m.found[kindEdit])
}

func TestFindBestSlotForEdit_FallsBackToCandidates(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 2, "Hall", domain.TableFree)
	store.AddTable(3, 4, "Hall", domain.TableFree)
	store.AddTable(5, 6, "Patio", domain.TableFree)
	own := store.AddReservation(5, today, "12:00", 60, domain.ReservationConfirmed)
	store.AddReservation(5, today, "10:00", 120, domain.ReservationActive)

	searcher, _ := newSearcher(store, testutil.At(2025, 6, 10, 8, 0))

	got, err := searcher.FindBestSlotForEdit(context.Background(), EditSlotQuery{
		BestSlotQuery:  BestSlotQuery{StartDate: today, Guests: 2, DurationMinutes: 60},
		ReservationID:  own,
		CurrentTableID: 5,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, types.TimeString("10:00"), got.StartTime)
	ids := make([]int64, 0, len(got.Tables))
	for _, tbl := range got.Tables {
		ids = append(ids, tbl.ID)
	}
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestFindBestSlotForEdit_CurrentTableUnderMaintenance(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(2, 4, "Hall", domain.TableFree)
	store.AddTable(5, 6, "Patio", domain.TableMaintenance)
	own := store.AddReservation(5, today, "10:00", 60, domain.ReservationConfirmed)

	searcher, _ := newSearcher(store, testutil.At(2025, 6, 10, 8, 0))

	got, err := searcher.FindBestSlotForEdit(context.Background(), EditSlotQuery{
		BestSlotQuery:  BestSlotQuery{StartDate: today, Guests: 2, DurationMinutes: 60},
		ReservationID:  own,
		CurrentTableID: 5,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.BestTable().ID)
}

func TestFindBestSlotForEdit_RequiresReservation(t *testing.T) {
	searcher, _ := newSearcher(testutil.NewStore(), testutil.At(2025, 6, 10, 8, 0))

	_, err := searcher.FindBestSlotForEdit(context.Background(), EditSlotQuery{
		BestSlotQuery: BestSlotQuery{StartDate: today, Guests: 2, DurationMinutes: 60},
	})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestFindNearestSlot(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Hall", domain.TableFree)
	store.AddReservation(1, today, "18:00", 90, domain.ReservationConfirmed)

	searcher, m := newSearcher(store, testutil.At(2025, 6, 10, 17, 0))
	ctx := context.Background()

	t.Run("off grid from rounds up", func(t *testing.T) {
		got, err := searcher.FindNearestSlot(ctx, NearestSlotQuery{Date: today, Guests: 2, DurationMinutes: 60, From: "16:50"})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, types.TimeString("17:00"), *got)
	})

	t.Run("skips busy window", func(t *testing.T) {
		got, err := searcher.FindNearestSlot(ctx, NearestSlotQuery{Date: today, Guests: 2, DurationMinutes: 60, From: "17:15"})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, types.TimeString("19:30"), *got)
	})

	t.Run("after last slot", func(t *testing.T) {
		got, err := searcher.FindNearestSlot(ctx, NearestSlotQuery{Date: today, Guests: 2, DurationMinutes: 60, From: "22:50"})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("too many guests", func(t *testing.T) {
		got, err := searcher.FindNearestSlot(ctx, NearestSlotQuery{Date: today, Guests: 5, DurationMinutes: 60, From: "12:00"})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalid from", func(t *testing.T) {
		_, err := searcher.FindNearestSlot(ctx, NearestSlotQuery{Date: today, Guests: 2, DurationMinutes: 60, From: "noon"})
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	assert.Equal(t, 2, m.found[kindNearest])
	assert.Equal(t, 2, m.none[kindNearest])
}

func TestFindNearestSlot_LookaheadLimit(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Hall", domain.TableFree)
	// 12:00..15:00 занято: 12 шагов от 12:00 заканчиваются на 14:45
	store.AddReservation(1, today, "12:00", 180, domain.ReservationConfirmed)

	searcher, _ := newSearcher(store, testutil.At(2025, 6, 10, 11, 0))
	ctx := context.Background()

	got, err := searcher.FindNearestSlot(ctx, NearestSlotQuery{Date: today, Guests: 2, DurationMinutes: 15, From: "12:00"})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = searcher.FindNearestSlot(ctx, NearestSlotQuery{Date: today, Guests: 2, DurationMinutes: 15, From: "12:15"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, types.TimeString("15:00"), *got)
}

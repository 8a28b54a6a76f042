package timegrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableService/pkg/types"
)

func TestSlots(t *testing.T) {
	s := Slots()

	require.Len(t, s, 52)
	assert.Equal(t, types.TimeString("10:00"), s[0])
	assert.Equal(t, types.TimeString("10:15"), s[1])
	assert.Equal(t, types.TimeString("22:45"), s[51])

	s[0] = "99:99"
	assert.Equal(t, types.TimeString("10:00"), At(0))
}

func TestIndexAtOrAfter(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    int
		wantOK  bool
	}{
		{name: "before opening", minutes: 8 * 60, want: 0, wantOK: true},
		{name: "exact first", minutes: 10 * 60, want: 0, wantOK: true},
		{name: "off grid rounds up", minutes: 10*60 + 1, want: 1, wantOK: true},
		{name: "exact slot", minutes: 18 * 60, want: 32, wantOK: true},
		{name: "last slot", minutes: 22*60 + 45, want: 51, wantOK: true},
		{name: "after last slot", minutes: 22*60 + 46, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IndexAtOrAfter(tt.minutes)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIndexAfter(t *testing.T) {
	idx, ok := IndexAfter(14 * 60)
	require.True(t, ok)
	assert.Equal(t, types.TimeString("14:15"), At(idx))

	idx, ok = IndexAfter(14*60 + 7)
	require.True(t, ok)
	assert.Equal(t, types.TimeString("14:15"), At(idx))

	_, ok = IndexAfter(22*60 + 45)
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("10:00"))
	assert.True(t, Contains("22:45"))
	assert.False(t, Contains("23:00"))
	assert.False(t, Contains("09:45"))
	assert.False(t, Contains("18:10"))
	assert.False(t, Contains("bad"))
}

func TestIsBookableStart(t *testing.T) {
	assert.True(t, IsBookableStart("10:00"))
	assert.True(t, IsBookableStart("22:59"))
	assert.False(t, IsBookableStart("23:00"))
	assert.False(t, IsBookableStart("09:59"))
}

func TestRoundToGrid(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2025, 6, 10, h, m, 0, 0, time.Local) }

	assert.Equal(t, types.TimeString("18:00"), RoundToGrid(at(18, 7)))
	assert.Equal(t, types.TimeString("18:15"), RoundToGrid(at(18, 8)))
	assert.Equal(t, types.TimeString("10:00"), RoundToGrid(at(7, 30)))
	assert.Equal(t, types.TimeString("22:45"), RoundToGrid(at(23, 30)))
}

func TestMinuteHelpers(t *testing.T) {
	m, err := TimeToMinutes("19:30")
	require.NoError(t, err)
	assert.Equal(t, 1170, m)

	ts, err := MinutesToTime(1170)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("19:30"), ts)

	ts, err = AddMinutes("18:00", 90)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("19:30"), ts)
}

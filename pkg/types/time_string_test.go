package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", input: "18:30", want: "18:30"},
		{name: "with seconds from db", input: "09:05:00", want: "09:05"},
		{name: "single digit hour is normalized", input: "9:05", want: "09:05"},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "hour overflow", input: "24:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("19:29").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 19*60+29, m)

	_, err = TimeString("").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("18:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("19:30"), got)

	_, err = TimeString("22:45").AddMinutes(180)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("10:00").IsBefore("10:15"))
	assert.False(t, TimeString("10:15").IsBefore("10:15"))
	assert.True(t, TimeString("22:45").IsAfter("10:00"))
	assert.False(t, TimeString("bad").IsAfter("10:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("14:00:00")))
	assert.Equal(t, TimeString("14:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 11, 45, 10, 0, time.UTC)))
	assert.Equal(t, TimeString("11:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("12:15").Value()
	require.NoError(t, err)
	assert.Equal(t, "12:15", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

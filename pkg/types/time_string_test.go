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
		want    string
		wantErr bool
	}{
		{name: "regular", input: "12:30", want: "12:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "with seconds from db", input: "18:45:00", want: "18:45"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "single digit hour", input: "9:00", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := MustTimeString("21:30")

	next, err := start.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "22:00", next.String())
	assert.True(t, start.IsBefore(next))
	assert.True(t, next.IsAfter(start))

	_, err = MustTimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_ScanAndValue(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("19:00:00")))
	assert.Equal(t, "19:00", ts.String())

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 7, 5, 0, 0, time.UTC)))
	assert.Equal(t, "07:05", ts.String())

	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "07:05", v)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
	v, err = ts.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTimeString_JSON(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.UnmarshalJSON([]byte(`"08:15"`)))

	data, err := ts.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"08:15"`, string(data))

	assert.Error(t, ts.UnmarshalJSON([]byte(`"8:15"`)))
}

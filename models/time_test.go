package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexTimeUnmarshalShapes(t *testing.T) {
	want := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
	}{
		{"rfc3339 string", `"2025-03-14T09:26:53Z"`},
		{"seconds record", `{"seconds":1741944413,"nanoseconds":0}`},
		{"epoch millis", `1741944413000`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ft FlexTime
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ft))
			assert.True(t, ft.Time.Equal(want), "got %v, want %v", ft.Time, want)
		})
	}
}

func TestFlexTimeUnmarshalNull(t *testing.T) {
	var ft FlexTime
	require.NoError(t, json.Unmarshal([]byte(`null`), &ft))
	assert.True(t, ft.IsZero())
}

func TestFlexTimeUnmarshalRejectsGarbage(t *testing.T) {
	var ft FlexTime
	assert.Error(t, json.Unmarshal([]byte(`"not a time"`), &ft))
	assert.Error(t, json.Unmarshal([]byte(`true`), &ft))
}

func TestFlexTimeMarshalRFC3339(t *testing.T) {
	ft := FlexTime{Time: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)}
	data, err := json.Marshal(ft)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-14T09:26:53Z"`, string(data))
}

func TestFlexTimeMarshalZeroIsNull(t *testing.T) {
	data, err := json.Marshal(FlexTime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestFlexTimeRoundTripStable(t *testing.T) {
	var first FlexTime
	require.NoError(t, json.Unmarshal([]byte(`{"seconds":1741944413,"nanoseconds":500000000}`), &first))

	data, err := json.Marshal(first)
	require.NoError(t, err)

	var second FlexTime
	require.NoError(t, json.Unmarshal(data, &second))
	assert.True(t, first.Time.Equal(second.Time))
}

func TestFlexTimeScan(t *testing.T) {
	var ft FlexTime
	require.NoError(t, ft.Scan(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)))
	assert.False(t, ft.IsZero())

	require.NoError(t, ft.Scan([]byte("2025-01-02 03:04:05")))
	assert.Equal(t, 2025, ft.Year())

	require.NoError(t, ft.Scan(nil))
	assert.True(t, ft.IsZero())

	assert.Error(t, ft.Scan(42))
}

package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBillingMode(t *testing.T) {
	cases := map[string]BillingMode{
		"hour":   ModeHour,
		"day":    ModeDay,
		" Month": ModeMonth,
	}
	for in, want := range cases {
		got, err := ParseBillingMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "hours", "week", "1"} {
		_, err := ParseBillingMode(in)
		assert.ErrorIs(t, err, ErrUnsupportedMode, in)
	}
}

func TestBillingMode_JSON(t *testing.T) {
	var v struct {
		Mode BillingMode `json:"mode"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"day"}`), &v))
	assert.Equal(t, ModeDay, v.Mode)

	err := json.Unmarshal([]byte(`{"mode":"fortnight"}`), &v)
	assert.ErrorIs(t, err, ErrUnsupportedMode)
}

func TestBillingMode_MarshalUnknown(t *testing.T) {
	raw, err := json.Marshal(CostResult{})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"mode":"unknown"`)
	assert.Contains(t, string(raw), `"amount":0.00`)

	var v struct {
		Mode BillingMode `json:"mode"`
	}
	err = json.Unmarshal([]byte(`{"mode":"unknown"}`), &v)
	assert.ErrorIs(t, err, ErrUnsupportedMode)
}

func TestParseClockTime(t *testing.T) {
	good := map[string]int{"00:00": 0, "06:30": 390, "23:59": 1439, "7:05": 425}
	for in, mins := range good {
		c, err := ParseClockTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, mins, c.Minutes())
	}

	for _, in := range []string{"", "24:00", "12:60", "12", "ab:cd", "12:5", "-1:00"} {
		_, err := ParseClockTime(in)
		assert.ErrorIs(t, err, ErrBadClockTime, in)
	}
}

func TestNightPeriod_CrossesMidnight(t *testing.T) {
	assert.True(t, night("22:00", "06:00").CrossesMidnight())
	assert.False(t, night("13:00", "15:00").CrossesMidnight())
	assert.False(t, night("06:00", "06:00").CrossesMidnight())
}

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	d := NewDate(2025, time.March, 9)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-09"`, string(b))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-12-31"`), &parsed))
	assert.Equal(t, NewDate(2024, time.December, 31), parsed)

	assert.Error(t, json.Unmarshal([]byte(`"31/12/2024"`), &parsed))
}

func TestDate_NullablePointerJSON(t *testing.T) {
	p := Project{Name: "Site"}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"start_date":null`)
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want Date
	}{
		{"time from driver", time.Date(2025, 1, 2, 15, 4, 5, 0, time.FixedZone("x", 3600)), NewDate(2025, time.January, 2)},
		{"plain text", "2025-06-30", NewDate(2025, time.June, 30)},
		{"timestamp text", "2025-06-30T00:00:00Z", NewDate(2025, time.June, 30)},
		{"bytes", []byte("2023-02-28"), NewDate(2023, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.src))
			assert.Equal(t, tt.want, d)
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := NewDate(2025, time.July, 4).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-07-04", v)
}

func TestTimestamp_Scan(t *testing.T) {
	want := time.Date(2025, 5, 1, 12, 30, 15, 123000000, time.UTC)

	for _, src := range []interface{}{
		"2025-05-01T12:30:15.123Z",
		"2025-05-01 12:30:15.123",
		[]byte("2025-05-01 14:30:15.123+02:00"),
		want.In(time.FixedZone("x", -3600)),
	} {
		var ts Timestamp
		require.NoError(t, ts.Scan(src), "%v", src)
		assert.True(t, want.Equal(ts.Time), "%v scanned as %v", src, ts.Time)
	}

	var ts Timestamp
	assert.Error(t, ts.Scan("yesterday"))
	assert.Error(t, ts.Scan(1))
}

func TestTimestamp_JSON(t *testing.T) {
	c := Client{ID: 1, CreatedAt: Timestamp{Time: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)}}
	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"created_at":"2025-01-01T08:00:00Z"`)

	var decoded Client
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, c.CreatedAt.Equal(decoded.CreatedAt.Time))
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinutes(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 1440, false},
		{"24:01", 0, true},
		{"9:00", 540, false},
		{"09:60", 0, true},
		{"25:00", 0, true},
		{"nine", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseMinutes(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestFormatMinutesRoundTrip(t *testing.T) {
	for _, in := range []string{"00:00", "09:05", "12:30", "24:00"} {
		m, err := ParseMinutes(in)
		require.NoError(t, err)
		assert.Equal(t, in, FormatMinutes(m))
	}
}

func TestTimeBlockOverlaps(t *testing.T) {
	a := TimeBlock{StartTime: "09:00", EndTime: "12:00", Type: BlockAvailable}

	assert.True(t, a.Overlaps(TimeBlock{StartTime: "11:00", EndTime: "13:00", Type: BlockBreak}))
	assert.True(t, a.Overlaps(TimeBlock{StartTime: "10:00", EndTime: "11:00", Type: BlockBreak}))
	assert.False(t, a.Overlaps(TimeBlock{StartTime: "12:00", EndTime: "13:00", Type: BlockBreak}), "shared boundary is not an overlap")
	assert.False(t, a.Overlaps(TimeBlock{StartTime: "07:00", EndTime: "09:00", Type: BlockBreak}))
}

func TestTimeBlockCapacityDefaultsToOne(t *testing.T) {
	b := TimeBlock{StartTime: "09:00", EndTime: "10:00", Type: BlockAvailable}
	assert.Equal(t, 1, b.Capacity())

	three := 3
	b.MaxConcurrentBookings = &three
	assert.Equal(t, 3, b.Capacity())
}

func TestTimeBlockListScanValueRoundTrip(t *testing.T) {
	two := 2
	in := TimeBlockList{
		{StartTime: "09:00", EndTime: "12:00", Type: BlockAvailable, MaxConcurrentBookings: &two},
		{StartTime: "12:00", EndTime: "13:00", Type: BlockBreak},
	}

	raw, err := in.Value()
	require.NoError(t, err)

	var out TimeBlockList
	require.NoError(t, out.Scan(raw))
	require.Len(t, out, 2)
	assert.Equal(t, in[0].StartTime, out[0].StartTime)
	require.NotNil(t, out[0].MaxConcurrentBookings)
	assert.Equal(t, 2, *out[0].MaxConcurrentBookings)
	assert.Nil(t, out[1].MaxConcurrentBookings)
}

func TestTimeBlockListScanNil(t *testing.T) {
	var out TimeBlockList
	require.NoError(t, out.Scan(nil))
	assert.Empty(t, out)
}

func TestBlockTypeValid(t *testing.T) {
	for _, bt := range []BlockType{BlockAvailable, BlockBreak, BlockBuffer, BlockBlocked} {
		assert.True(t, bt.Valid())
	}
	assert.False(t, BlockType("LUNCH").Valid())
	assert.False(t, BlockType("").Valid())
}

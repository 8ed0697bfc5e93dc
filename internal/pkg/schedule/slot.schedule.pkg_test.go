package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()

	require.Len(t, slots, 25)
	assert.Equal(t, "9:00 AM", slots[0])
	assert.Equal(t, "9:30 AM", slots[1])
	assert.Equal(t, "12:00 PM", slots[6])
	assert.Equal(t, "12:30 PM", slots[7])
	assert.Equal(t, "9:00 PM", slots[24])

	seen := map[string]bool{}
	var prev time.Time
	for i, s := range slots {
		assert.False(t, seen[s], "duplicate slot %s", s)
		seen[s] = true

		parsed, err := time.Parse(slotLayout, s)
		require.NoError(t, err)
		if i > 0 {
			assert.True(t, parsed.After(prev), "%s should come after %s", s, prev.Format(slotLayout))
		}
		prev = parsed
	}
}

func TestTimeSlotsIsRestartable(t *testing.T) {
	first := TimeSlots()
	first[0] = "mutated"

	assert.Equal(t, "9:00 AM", TimeSlots()[0])
}

func TestIsTimeSlot(t *testing.T) {
	assert.True(t, IsTimeSlot("10:30 AM"))
	assert.True(t, IsTimeSlot("9:00 PM"))
	assert.False(t, IsTimeSlot("9:30 PM"))
	assert.False(t, IsTimeSlot("8:30 AM"))
	assert.False(t, IsTimeSlot("10:15 AM"))
	assert.False(t, IsTimeSlot(""))
}

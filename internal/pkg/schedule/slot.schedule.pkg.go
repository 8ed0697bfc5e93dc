package schedule

import (
	"time"

	"github.com/samber/lo"
)

const (
	openingMinute = 9 * 60
	closingMinute = 21 * 60
	slotInterval  = 30
	slotLayout    = "3:04 PM"
)

// TimeSlots returns the half-hour labels from 9:00 AM to 9:00 PM
// inclusive. The result is freshly allocated on every call.
func TimeSlots() []string {
	slots := make([]string, 0, (closingMinute-openingMinute)/slotInterval+1)
	for m := openingMinute; m <= closingMinute; m += slotInterval {
		t := time.Date(2000, time.January, 1, m/60, m%60, 0, 0, time.UTC)
		slots = append(slots, t.Format(slotLayout))
	}
	return slots
}

var slotSet = lo.SliceToMap(TimeSlots(), func(s string) (string, struct{}) {
	return s, struct{}{}
})

// IsTimeSlot reports whether label is one of the generated slots.
func IsTimeSlot(label string) bool {
	_, ok := slotSet[label]
	return ok
}

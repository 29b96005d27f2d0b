package session

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/facupepi/serviapp-cli/internal/api"
)

// TimeRange is one availability window as the forms handle it.
type TimeRange struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
}

// WeekSchedule is the form shape of a service's availability: lowercase
// English weekday -> windows. The wire shape is api.Availability.
type WeekSchedule map[string][]TimeRange

// Weekdays in backend order, used to keep output deterministic.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// NormalizeAvailability converts the form shape into the backend's
// "HH:MM-HH:MM" string lists. Empty days are omitted; ranges within a day
// are sorted by start time so the conversion round-trips as a set.
func NormalizeAvailability(week WeekSchedule) api.Availability {
	if len(week) == 0 {
		return api.Availability{}
	}

	out := make(api.Availability, len(week))
	for day, ranges := range week {
		if len(ranges) == 0 {
			continue
		}
		sorted := make([]TimeRange, len(ranges))
		copy(sorted, ranges)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

		windows := make([]string, 0, len(sorted))
		for _, r := range sorted {
			windows = append(windows, fmt.Sprintf("%s-%s", r.Start, r.End))
		}
		out[strings.ToLower(day)] = windows
	}
	return out
}

// ExpandAvailability converts the wire shape back into the form shape.
// Malformed entries are dropped rather than failing the whole schedule.
func ExpandAvailability(avail api.Availability) WeekSchedule {
	if len(avail) == 0 {
		return WeekSchedule{}
	}

	out := make(WeekSchedule, len(avail))
	for day, windows := range avail {
		ranges := make([]TimeRange, 0, len(windows))
		for _, w := range windows {
			start, end, ok := strings.Cut(w, "-")
			if !ok || !clockRe.MatchString(start) || !clockRe.MatchString(end) {
				continue
			}
			ranges = append(ranges, TimeRange{Start: start, End: end})
		}
		if len(ranges) == 0 {
			continue
		}
		sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
		out[strings.ToLower(day)] = ranges
	}
	return out
}

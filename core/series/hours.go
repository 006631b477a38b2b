package series

import (
	"time"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// ToHours converts a tick series to float hours.
func ToHours(points []schema.DurationPoint) []schema.HourPoint {
	out := make([]schema.HourPoint, len(points))
	for i, p := range points {
		out[i] = schema.HourPoint{Kind: p.Kind, OccurredAt: p.OccurredAt, Value: p.Value.Hours(), SourceID: p.SourceID}
	}
	return out
}

// Until drops the points after asOf. A zero asOf keeps everything.
func Until[T schema.Number](points []schema.SeriesPoint[T], asOf time.Time) []schema.SeriesPoint[T] {
	if asOf.IsZero() {
		return points
	}
	out := make([]schema.SeriesPoint[T], 0, len(points))
	for _, p := range points {
		if p.OccurredAt.After(asOf) {
			break
		}
		out = append(out, p)
	}
	return out
}

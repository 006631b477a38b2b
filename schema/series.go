package schema

import "time"

// Number is the value domain of a series: integer ticks inside the engine,
// float hours at the output boundary.
type Number interface {
	~int64 | ~float64
}

// SeriesPoint is one entry of a reconstructed series.
// SourceID points back to the originating task, changelog entry or worklog; zero means none.
type SeriesPoint[T Number] struct {
	Kind       PointKind `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
	Value      T         `json:"value"`
	SourceID   int64     `json:"source_id,omitempty"`
}

// DurationPoint is the intermediate representation used by every transform.
type DurationPoint = SeriesPoint[time.Duration]

// HourPoint is the output representation.
type HourPoint = SeriesPoint[float64]

// WithValue returns a copy of the point carrying v.
func (p SeriesPoint[T]) WithValue(v T) SeriesPoint[T] {
	p.Value = v
	return p
}

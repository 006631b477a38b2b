// Package series reconstructs burndown, burnup and cumulative flow series
// from a task's audit history.
//
// Every transform is a pure function over an ordered, finite slice and never
// mutates its input. Values are integer ticks (time.Duration) throughout;
// conversion to float hours happens once, at the output boundary (ToHours).
package series

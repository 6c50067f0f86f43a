package geometry

import (
	"iter"
	"math"
)

// RoutePoints yields evenly spaced points on the great circle from p1 to p2,
// no two consecutive points further apart than the body's MaxRouteStep.
// includeFirst and includeLast control whether the endpoints are yielded so
// that chained segments do not repeat points.
func (b Body) RoutePoints(p1, p2 Point, includeFirst, includeLast bool) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		dist := b.Distance(p1, p2)
		steps := int(math.Ceil(dist / b.MaxRouteStep))
		if steps < 1 {
			steps = 1
		}
		step := dist / float64(steps)

		if includeFirst && !yield(p1) {
			return
		}
		target := ToVector(p2)
		current := p1
		for i := 0; i < steps-1; i++ {
			// step never exceeds MaxRouteStep, which Validate keeps well inside the
			// accuracy limit of StepTo
			current = b.step(ToVector(current), target, step)
			if !yield(current) {
				return
			}
		}
		if includeLast {
			yield(p2)
		}
	}
}

package spatial

import (
	"fmt"
	"math"

	"github.com/soniakeys/unit"
)

const (
	twoPi = 2 * math.Pi
	slack = 1e-12
)

// Interval is a closed range of radians.
type Interval struct {
	Lo, Hi float64
}

func (iv Interval) Contains(x float64) bool { return x >= iv.Lo && x <= iv.Hi }

// Region is a coarse RA/Dec box around a search center. When Wrapped is set
// the RA condition is the union ra <= RA.Hi OR ra >= RA.Lo, i.e. the box
// straddles the 0/2π seam.
type Region struct {
	RA      Interval
	Wrapped bool
	Dec     Interval
}

// BuildRegion returns a box that contains every point within radiusDeg of
// the center. It is only a prefilter; callers re-check with Separation.
//
// The RA half-width is the radius widened by 1/cos(dec), and the box covers
// every RA once the circle reaches a pole.
func BuildRegion(ra, dec, radiusDeg float64) Region {
	r := unit.AngleFromDeg(radiusDeg).Rad()
	ra = math.Mod(ra, twoPi)
	if ra < 0 {
		ra += twoPi
	}

	reg := Region{
		Dec: Interval{
			Lo: math.Max(dec-r-slack, -math.Pi/2),
			Hi: math.Min(dec+r+slack, math.Pi/2),
		},
	}

	w, full := raHalfWidth(dec, r)
	if full {
		reg.RA = Interval{Lo: 0, Hi: twoPi}
		return reg
	}

	lo, hi := ra-w, ra+w
	switch {
	case lo < 0:
		lo += twoPi
		reg.Wrapped = true
	case hi > twoPi:
		hi -= twoPi
		reg.Wrapped = true
	}
	reg.RA = Interval{Lo: lo, Hi: hi}
	return reg
}

// raHalfWidth is the largest RA offset of any point on the circle of radius
// r around a center at declination dec.
func raHalfWidth(dec, r float64) (w float64, full bool) {
	if r >= math.Pi/2 || math.Abs(dec)+r >= math.Pi/2 {
		return 0, true
	}
	x := math.Sin(r) / math.Cos(dec)
	if x >= 1 {
		return 0, true
	}
	w = math.Asin(x)
	// points exactly on the circle must stay inside after rounding
	w += w*1e-9 + slack
	if w < r {
		w = r
	}
	if w >= math.Pi {
		return 0, true
	}
	return w, false
}

// Contains evaluates the same predicate a store applies to the region.
func (r Region) Contains(ra, dec float64) bool {
	if !r.Dec.Contains(dec) {
		return false
	}
	if r.Wrapped {
		return ra <= r.RA.Hi || ra >= r.RA.Lo
	}
	return r.RA.Contains(ra)
}

func (r Region) String() string {
	if r.Wrapped {
		return fmt.Sprintf("(ra <= %v OR ra >= %v) AND (dec BETWEEN %v AND %v)",
			r.RA.Hi, r.RA.Lo, r.Dec.Lo, r.Dec.Hi)
	}
	return fmt.Sprintf("(ra BETWEEN %v AND %v) AND (dec BETWEEN %v AND %v)",
		r.RA.Lo, r.RA.Hi, r.Dec.Lo, r.Dec.Hi)
}

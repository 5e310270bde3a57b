// Package spatial holds the great-circle math and the coarse RA/Dec search
// region used to prune store scans.
package spatial

import (
	"fmt"
	"math"

	"github.com/soniakeys/unit"
)

// Separation returns the angular separation between two points, together
// with the plain differences in RA and Dec. All inputs are radians, all
// outputs are degrees.
func Separation(ra1, dec1, ra2, dec2 float64) (sep, dRA, dDec float64) {
	// haversine form; acos(sin*sin+cos*cos*cos) loses precision at small separations
	sDec := math.Sin((dec2 - dec1) / 2)
	sRA := math.Sin((ra2 - ra1) / 2)
	h := sDec*sDec + math.Cos(dec1)*math.Cos(dec2)*sRA*sRA
	if h > 1 {
		h = 1
	}
	s := 2 * math.Asin(math.Sqrt(h))
	return unit.Angle(s).Deg(), unit.Angle(ra2 - ra1).Deg(), unit.Angle(dec2 - dec1).Deg()
}

// FormatSeparation renders degrees as "D° Mm S.SSs".
func FormatSeparation(deg float64) string {
	d := int(deg)
	md := math.Abs(deg-float64(d)) * 60
	m := int(md)
	s := (md - float64(m)) * 60
	return fmt.Sprintf("%d° %dm %.2fs", d, m, s)
}

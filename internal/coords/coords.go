// Package coords converts equatorial coordinates between sexagesimal text,
// component triplets and radians.
package coords

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"

	"github.com/mohammed-shakir/ongc/internal/core/model"
)

// NA is returned by Format for an absent axis.
const NA = "N/A"

var (
	raRe  = regexp.MustCompile(`^(\d{1,2}):(\d{1,2}):(\d{1,2}(?:\.\d{1,2})?)$`)
	decRe = regexp.MustCompile(`^([+-]?)(\d{1,2}):(\d{1,2}):(\d{1,2}(?:\.\d{1,2})?)$`)
)

const pairForm = "expected HH:MM:SS.ss +/-DD:MM:SS.s"

// Parse reads "HH:MM:SS.ss +/-DD:MM:SS.s" and returns RA and Dec in radians.
// The two axes are separated by exactly one space and the declination sign
// is mandatory.
func Parse(text string) (ra, dec float64, err error) {
	raText, decText, ok := strings.Cut(text, " ")
	if !ok || decText == "" || (decText[0] != '+' && decText[0] != '-') {
		return 0, 0, &model.CoordinatesError{Input: text, Reason: pairForm}
	}
	ra, reason := parseRA(raText)
	if reason == "" {
		dec, reason = parseDec(decText)
	}
	if reason != "" {
		return 0, 0, &model.CoordinatesError{Input: text, Reason: reason}
	}
	return ra, dec, nil
}

// ParseRA reads a right ascension "HH:MM:SS[.ss]" and returns radians.
func ParseRA(text string) (float64, error) {
	ra, reason := parseRA(text)
	if reason != "" {
		return 0, &model.CoordinatesError{Input: text, Reason: reason}
	}
	return ra, nil
}

// ParseDec reads a declination "[+-]DD:MM:SS[.s]" and returns radians.
func ParseDec(text string) (float64, error) {
	dec, reason := parseDec(text)
	if reason != "" {
		return 0, &model.CoordinatesError{Input: text, Reason: reason}
	}
	return dec, nil
}

func parseRA(text string) (float64, string) {
	m := raRe.FindStringSubmatch(text)
	if m == nil {
		return 0, pairForm
	}
	h, _ := strconv.Atoi(m[1])
	rm, _ := strconv.Atoi(m[2])
	rs, _ := strconv.ParseFloat(m[3], 64)
	if h >= 24 || rm >= 60 || rs >= 60 {
		return 0, "right ascension component out of range"
	}
	return unit.NewRA(h, rm, rs).Rad(), ""
}

func parseDec(text string) (float64, string) {
	m := decRe.FindStringSubmatch(text)
	if m == nil {
		return 0, pairForm
	}
	// the sign belongs to the whole declination, so "-00:03:40.6" stays negative
	neg := byte(' ')
	if m[1] == "-" {
		neg = '-'
	}
	d, _ := strconv.Atoi(m[2])
	dm, _ := strconv.Atoi(m[3])
	ds, _ := strconv.ParseFloat(m[4], 64)
	if d > 90 || dm >= 60 || ds >= 60 {
		return 0, "declination component out of range"
	}
	dec := unit.NewAngle(neg, d, dm, ds).Rad()
	if math.Abs(dec) > math.Pi/2+1e-12 {
		return 0, "declination beyond the pole"
	}
	return math.Max(-math.Pi/2, math.Min(dec, math.Pi/2)), ""
}

// Format renders RA as HH:MM:SS.ss and Dec as +/-DD:MM:SS.s. A nil axis is
// rendered as NA.
func Format(ra, dec *float64) (raText, decText string) {
	raText, decText = NA, NA
	if ra != nil {
		raText = FormatRA(*ra)
	}
	if dec != nil {
		decText = FormatDec(*dec)
	}
	return raText, decText
}

func FormatRA(ra float64) string {
	// hundredths of a second of time, rounded once so carries propagate
	cs := int64(math.Round(normRA(ra) * 12 / math.Pi * 3600 * 100))
	cs %= 24 * 3600 * 100
	h := cs / 360000
	m := cs / 6000 % 60
	s := cs % 6000
	return fmt.Sprintf("%02d:%02d:%02d.%02d", h, m, s/100, s%100)
}

func FormatDec(dec float64) string {
	sign := '+'
	if dec < 0 {
		sign = '-'
	}
	ds := int64(math.Round(math.Abs(unit.Angle(dec).Deg()) * 3600 * 10))
	d := ds / 36000
	m := ds / 600 % 60
	s := ds % 600
	return fmt.Sprintf("%c%02d:%02d:%02d.%d", sign, d, m, s/10, s%10)
}

// Triplets splits radians into [h, m, s] and [d, m, s]. The declination
// sign is carried on the degree component, including -0.
func Triplets(ra, dec float64) (hms, dms [3]float64) {
	h := normRA(ra) * 12 / math.Pi
	hms[0] = math.Trunc(h)
	m := (h - hms[0]) * 60
	hms[1] = math.Trunc(m)
	hms[2] = (m - hms[1]) * 60

	d := math.Abs(unit.Angle(dec).Deg())
	dms[0] = math.Trunc(d)
	m = (d - dms[0]) * 60
	dms[1] = math.Trunc(m)
	dms[2] = (m - dms[1]) * 60
	if math.Signbit(dec) {
		dms[0] = -dms[0]
	}
	return hms, dms
}

func normRA(ra float64) float64 {
	ra = math.Mod(ra, 2*math.Pi)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	return ra
}

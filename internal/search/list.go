package search

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/soniakeys/unit"

	"github.com/mohammed-shakir/ongc/internal/core/model"
	"github.com/mohammed-shakir/ongc/internal/logger"
	"github.com/mohammed-shakir/ongc/internal/lookup"
)

// Filter selects records for List. Angles are in degrees, sizes in
// arcminutes. Zero values mean "no constraint".
type Filter struct {
	// Catalog is "NGC", "IC" or "M" (objects with a Messier number, listed in
	// Messier order).
	Catalog        string
	Types          []string
	Constellations []string
	MinSize        *float64
	// MaxSize also keeps objects whose size is unknown.
	MaxSize *float64
	MaxBMag *float64
	MaxVMag *float64
	// MinRA > MaxRA selects a range that wraps through 0h.
	MinRA  *float64
	MaxRA  *float64
	MinDec *float64
	MaxDec *float64
	// CommonName matches any record whose common names contain it.
	CommonName string
	WithName   *bool
}

// List returns every record matching f. Duplicate records are returned as
// they are, not redirected.
func (s *Service) List(ctx context.Context, f Filter) (out []*model.Object, err error) {
	ctx = logger.WithQueryID(ctx, "")
	defer s.observe(ctx, "list", time.Now(), &err)

	q, err := f.query()
	if err != nil {
		return nil, err
	}

	h, err := s.src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	matched, err := h.LookupMany(ctx, q)
	if err != nil {
		return nil, err
	}
	out = make([]*model.Object, 0, len(matched))
	for _, name := range matched {
		o, err := h.LookupOne(ctx, model.Identifier{Key: strings.ToUpper(name)})
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	s.log.DebugContext(ctx, "list", "matched", len(out))
	return out, nil
}

func (f Filter) query() (lookup.Query, error) {
	var q lookup.Query

	switch c := strings.ToUpper(strings.TrimSpace(f.Catalog)); c {
	case "":
	case "NGC", "IC":
		q.NamePrefix = c
	case "M":
		q.HasMessier = true
		q.OrderBy = lookup.OrderMessier
	default:
		return q, model.InvalidArgf("catalog filter %q: want NGC, IC or M", f.Catalog)
	}

	q.Types = f.Types
	for _, c := range f.Constellations {
		q.Constellations = append(q.Constellations, capitalize(c))
	}
	q.MinSize, q.MaxSize = f.MinSize, f.MaxSize
	q.MaxBMag, q.MaxVMag = f.MaxBMag, f.MaxVMag

	var err error
	if q.RA.Min, err = angle("minimum RA", f.MinRA, 0, 360); err != nil {
		return q, err
	}
	if q.RA.Max, err = angle("maximum RA", f.MaxRA, 0, 360); err != nil {
		return q, err
	}
	if q.Dec.Min, err = angle("minimum declination", f.MinDec, -90, 90); err != nil {
		return q, err
	}
	if q.Dec.Max, err = angle("maximum declination", f.MaxDec, -90, 90); err != nil {
		return q, err
	}
	if f.MinDec != nil && f.MaxDec != nil && *f.MinDec > *f.MaxDec {
		return q, model.InvalidArgf("minimum declination %v is above maximum %v", *f.MinDec, *f.MaxDec)
	}

	q.CommonNameLike = strings.TrimSpace(f.CommonName)
	q.WithName = f.WithName
	return q, nil
}

// angle converts an optional bound in degrees to radians.
func angle(what string, deg *float64, lo, hi float64) (*float64, error) {
	if deg == nil {
		return nil, nil
	}
	// bounds parsed from sexagesimal text may land a rounding step outside
	const eps = 1e-9
	if math.IsNaN(*deg) || *deg < lo-eps || *deg > hi+eps {
		return nil, model.InvalidArgf("%s %v outside [%v, %v] degrees", what, *deg, lo, hi)
	}
	r := unit.AngleFromDeg(*deg).Rad()
	return &r, nil
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

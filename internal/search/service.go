// Package search answers catalog questions: resolve an identifier to one
// record, and find the records within some angular distance of a record or
// of a sky position.
package search

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mohammed-shakir/ongc/internal/catalog"
	"github.com/mohammed-shakir/ongc/internal/coords"
	"github.com/mohammed-shakir/ongc/internal/core/model"
	"github.com/mohammed-shakir/ongc/internal/core/observability"
	"github.com/mohammed-shakir/ongc/internal/logger"
	"github.com/mohammed-shakir/ongc/internal/lookup"
	"github.com/mohammed-shakir/ongc/internal/names"
	"github.com/mohammed-shakir/ongc/internal/spatial"
)

// MaxRadiusArcmin bounds every proximity search (10 degrees).
const MaxRadiusArcmin = 600

type Service struct {
	src     lookup.Source
	log     *slog.Logger
	dataset string
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDatasetVersion sets the catalog release reported by Stats.
func WithDatasetVersion(v string) Option {
	return func(s *Service) { s.dataset = v }
}

func New(src lookup.Source, opts ...Option) *Service {
	s := &Service{src: src, log: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Get resolves name to its record. Duplicate records are replaced by their
// main record unless keepDup is set.
func (s *Service) Get(ctx context.Context, name string, keepDup bool) (o *model.Object, err error) {
	ctx = logger.WithQueryID(ctx, "")
	defer s.observe(ctx, "get", time.Now(), &err)

	h, err := s.src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	return s.resolve(ctx, h, name, keepDup)
}

// Neighbors returns the records within radiusArcmin of the named object,
// nearest first. catalogFilter is "", "all", "NGC" or "IC".
func (s *Service) Neighbors(ctx context.Context, name string, radiusArcmin float64, catalogFilter string) (out []model.Neighbor, err error) {
	ctx = logger.WithQueryID(ctx, "")
	defer s.observe(ctx, "neighbors", time.Now(), &err)

	prefix, err := validate(radiusArcmin, catalogFilter)
	if err != nil {
		return nil, err
	}

	h, err := s.src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	origin, err := s.resolve(ctx, h, name, false)
	if err != nil {
		return nil, err
	}
	return s.around(ctx, h, "neighbors", origin, radiusArcmin, prefix)
}

// NeighborsOf is Neighbors for an origin that was already resolved.
func (s *Service) NeighborsOf(ctx context.Context, origin *model.Object, radiusArcmin float64, catalogFilter string) (out []model.Neighbor, err error) {
	ctx = logger.WithQueryID(ctx, "")
	defer s.observe(ctx, "neighbors", time.Now(), &err)

	prefix, err := validate(radiusArcmin, catalogFilter)
	if err != nil {
		return nil, err
	}
	if origin == nil {
		return nil, model.InvalidArgf("origin object is nil")
	}

	h, err := s.src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	return s.around(ctx, h, "neighbors", origin, radiusArcmin, prefix)
}

func (s *Service) around(ctx context.Context, h lookup.Lookup, op string, origin *model.Object, radiusArcmin float64, prefix string) ([]model.Neighbor, error) {
	if !origin.HasCoords() {
		return nil, &model.CoordinatesError{Reason: "starting object " + origin.Name + " has no registered coordinates"}
	}
	return s.scan(ctx, h, op, *origin.RA, *origin.Dec, origin.Name, radiusArcmin, prefix)
}

// Nearby returns the records within radiusArcmin of a position given as
// "HH:MM:SS.ss +/-DD:MM:SS.s", nearest first.
func (s *Service) Nearby(ctx context.Context, coordsText string, radiusArcmin float64, catalogFilter string) (out []model.Neighbor, err error) {
	ctx = logger.WithQueryID(ctx, "")
	defer s.observe(ctx, "nearby", time.Now(), &err)

	prefix, err := validate(radiusArcmin, catalogFilter)
	if err != nil {
		return nil, err
	}
	ra, dec, err := coords.Parse(coordsText)
	if err != nil {
		return nil, err
	}

	h, err := s.src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	return s.scan(ctx, h, "nearby", ra, dec, "", radiusArcmin, prefix)
}

// scan runs the region prefilter and then keeps the candidates whose exact
// separation from (ra, dec) is within the radius.
func (s *Service) scan(ctx context.Context, h lookup.Lookup, op string, ra, dec float64, exclude string, radiusArcmin float64, prefix string) ([]model.Neighbor, error) {
	region := spatial.BuildRegion(ra, dec, math.Ceil(radiusArcmin/60))
	candidates, err := h.LookupMany(ctx, lookup.Query{
		ExcludeTypes: []string{model.TypeDuplicate},
		ExcludeName:  exclude,
		NamePrefix:   prefix,
		Region:       &region,
	})
	if err != nil {
		return nil, err
	}

	limit := radiusArcmin / 60
	out := make([]model.Neighbor, 0)
	for _, name := range candidates {
		o, err := h.LookupOne(ctx, model.Identifier{Key: strings.ToUpper(name)})
		if err != nil {
			return nil, err
		}
		if !o.HasCoords() {
			continue
		}
		sep, _, _ := spatial.Separation(ra, dec, *o.RA, *o.Dec)
		if sep <= limit {
			out = append(out, model.Neighbor{Object: o, Separation: sep})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Separation != out[j].Separation {
			return out[i].Separation < out[j].Separation
		}
		return out[i].Object.Name < out[j].Object.Name
	})

	observability.AddCandidates(op, len(candidates), len(out))
	s.log.DebugContext(ctx, "proximity scan",
		"op", op, "region", region.String(), "radius_arcmin", radiusArcmin,
		"candidates", len(candidates), "found", len(out))
	return out, nil
}

// Separation is the angular distance between two objects and the raw
// differences of their coordinates, all in degrees.
type Separation struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Degrees  float64 `json:"separation_deg"`
	DeltaRA  float64 `json:"delta_ra_deg"`
	DeltaDec float64 `json:"delta_dec_deg"`
}

func (p Separation) String() string { return spatial.FormatSeparation(p.Degrees) }

func (s *Service) Separation(ctx context.Context, a, b string) (sep Separation, err error) {
	ctx = logger.WithQueryID(ctx, "")
	defer s.observe(ctx, "separation", time.Now(), &err)

	h, err := s.src.Open(ctx)
	if err != nil {
		return Separation{}, err
	}
	defer h.Close()

	o1, err := s.resolve(ctx, h, a, false)
	if err != nil {
		return Separation{}, err
	}
	o2, err := s.resolve(ctx, h, b, false)
	if err != nil {
		return Separation{}, err
	}
	if !o1.HasCoords() || !o2.HasCoords() {
		return Separation{}, &model.CoordinatesError{Reason: "one object has no registered coordinates"}
	}
	sep = Separation{From: o1.Name, To: o2.Name}
	sep.Degrees, sep.DeltaRA, sep.DeltaDec = spatial.Separation(*o1.RA, *o1.Dec, *o2.RA, *o2.Dec)
	return sep, nil
}

func (s *Service) resolve(ctx context.Context, h lookup.Lookup, name string, keepDup bool) (*model.Object, error) {
	id, err := names.Parse(name)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithCatalog(ctx, id.Catalog)
	o, err := h.LookupOne(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := catalog.ResolveDuplicate(ctx, h, o, keepDup)
	if err != nil {
		return nil, err
	}
	if r != o {
		s.log.DebugContext(ctx, "duplicate redirected", "from", o.Name, "to", r.Name)
	}
	return r, nil
}

// validate checks the arguments shared by the proximity searches and returns
// the name prefix implied by the catalog filter.
func validate(radiusArcmin float64, catalogFilter string) (string, error) {
	if math.IsNaN(radiusArcmin) || radiusArcmin < 0 {
		return "", model.InvalidArgf("search radius %v must be a non-negative number of arcminutes", radiusArcmin)
	}
	if radiusArcmin > MaxRadiusArcmin {
		return "", model.InvalidArgf("the maximum search radius allowed is 10 degrees (%d arcmin), got %v", MaxRadiusArcmin, radiusArcmin)
	}
	switch c := strings.ToUpper(strings.TrimSpace(catalogFilter)); c {
	case "", "ALL":
		return "", nil
	case "NGC", "IC":
		return c, nil
	default:
		return "", model.InvalidArgf("catalog filter %q: want all, NGC or IC", catalogFilter)
	}
}

func (s *Service) observe(ctx context.Context, op string, start time.Time, errp *error) {
	kind := errKind(*errp)
	observability.ObserveSearch(op, kind, time.Since(start).Seconds())
	if *errp != nil {
		s.log.DebugContext(ctx, "catalog call failed", "op", op, "kind", kind, "err", *errp)
	}
}

func errKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrUnknownIdentifier):
		return "unknown_identifier"
	case errors.Is(err, model.ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, model.ErrInvalidCoordinates):
		return "invalid_coordinates"
	case errors.Is(err, model.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, model.ErrUnresolvedDuplicate):
		return "unresolved_duplicate"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

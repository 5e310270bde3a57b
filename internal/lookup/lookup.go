// Package lookup defines the boundary between the search core and a
// read-only catalog store.
package lookup

import (
	"context"

	"github.com/mohammed-shakir/ongc/internal/core/model"
	"github.com/mohammed-shakir/ongc/internal/spatial"
)

// Lookup is the read side of a catalog store.
type Lookup interface {
	// LookupOne returns the record for a recognized identifier, or an error
	// wrapping model.ErrObjectNotFound.
	LookupOne(ctx context.Context, id model.Identifier) (*model.Object, error)

	// LookupMany returns the names of the records matching q.
	LookupMany(ctx context.Context, q Query) ([]string, error)
}

// Handle is a Lookup scoped to one call. Close releases it.
type Handle interface {
	Lookup
	Close() error
}

// Source hands out handles.
type Source interface {
	Open(ctx context.Context) (Handle, error)
}

// Stats is implemented by stores that can count records per type.
type Stats interface {
	TypeCounts(ctx context.Context) ([]TypeCount, error)
}

type TypeCount struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// Order values for Query.OrderBy.
const (
	OrderNone    = ""
	OrderName    = "name"
	OrderMessier = "messier"
)

// Range is an optional closed bound on a numeric column.
type Range struct {
	Min *float64
	Max *float64
}

// Query is a conjunction of predicates over the objects table. Zero values
// mean "no constraint".
type Query struct {
	ExcludeTypes []string
	Types        []string
	ExcludeName  string
	NamePrefix   string
	HasMessier   bool
	Region       *spatial.Region

	Constellations []string
	// MinSize keeps majax >= MinSize; MaxSize keeps majax < MaxSize or
	// objects with no recorded size.
	MinSize *float64
	MaxSize *float64
	MaxBMag *float64
	MaxVMag *float64
	// RA and Dec bounds in radians. RA with Min > Max wraps through 0.
	RA  Range
	Dec Range

	CommonNameLike string
	WithName       *bool

	OrderBy string
}

// Matches evaluates q against one record in memory. Stores that cannot push
// a predicate down use it to filter.
func (q Query) Matches(o *model.Object) bool {
	for _, t := range q.ExcludeTypes {
		if o.Type == t {
			return false
		}
	}
	if len(q.Types) > 0 && !contains(q.Types, o.Type) {
		return false
	}
	if q.ExcludeName != "" && o.Name == q.ExcludeName {
		return false
	}
	if q.NamePrefix != "" && !hasPrefix(o.Name, q.NamePrefix) {
		return false
	}
	if q.HasMessier && o.Messier == "" {
		return false
	}
	if q.Region != nil {
		if !o.HasCoords() || !q.Region.Contains(*o.RA, *o.Dec) {
			return false
		}
	}
	if len(q.Constellations) > 0 && !contains(q.Constellations, o.Constellation) {
		return false
	}
	if q.MinSize != nil && (o.MajAx == nil || *o.MajAx < *q.MinSize) {
		return false
	}
	if q.MaxSize != nil && o.MajAx != nil && *o.MajAx >= *q.MaxSize {
		return false
	}
	if q.MaxBMag != nil && (o.BMag == nil || *o.BMag > *q.MaxBMag) {
		return false
	}
	if q.MaxVMag != nil && (o.VMag == nil || *o.VMag > *q.MaxVMag) {
		return false
	}
	if !raMatches(q.RA, o.RA) || !decMatches(q.Dec, o.Dec) {
		return false
	}
	if q.CommonNameLike != "" && !containsFold(o.CommonNames, q.CommonNameLike) {
		return false
	}
	if q.WithName != nil && *q.WithName != (o.CommonNames != "") {
		return false
	}
	return true
}

func raMatches(r Range, ra *float64) bool {
	if r.Min == nil && r.Max == nil {
		return true
	}
	if ra == nil {
		return false
	}
	switch {
	case r.Min != nil && r.Max != nil && *r.Min > *r.Max:
		return *ra >= *r.Min || *ra <= *r.Max
	case r.Min != nil && *ra < *r.Min:
		return false
	case r.Max != nil && *ra > *r.Max:
		return false
	}
	return true
}

func decMatches(r Range, dec *float64) bool {
	if r.Min == nil && r.Max == nil {
		return true
	}
	if dec == nil {
		return false
	}
	if r.Min != nil && *dec < *r.Min {
		return false
	}
	if r.Max != nil && *dec > *r.Max {
		return false
	}
	return true
}

package lookup

import (
	"testing"

	"github.com/mohammed-shakir/ongc/internal/core/model"
	"github.com/mohammed-shakir/ongc/internal/spatial"
)

func f(v float64) *float64 { return &v }

func TestQueryMatches(t *testing.T) {
	galaxy := &model.Object{
		Name: "NGC0001", Type: model.TypeGalaxy, Constellation: "Peg",
		RA: f(0.0317), Dec: f(0.4836), MajAx: f(1.57), BMag: f(13.69),
	}
	dup := &model.Object{Name: "IC0011", Type: model.TypeDuplicate, RA: f(0.1), Dec: f(1.0)}
	noCoords := &model.Object{Name: "IC1064", Type: model.TypeNonexistent}
	named := &model.Object{
		Name: "NGC1976", Type: model.TypeHII, Messier: "042",
		CommonNames: "Great Orion Nebula,Orion Nebula", RA: f(1.4637), Dec: f(-0.0945),
	}

	reg := spatial.BuildRegion(0.0317, 0.4836, 1)
	yes, no := true, false

	cases := []struct {
		name string
		q    Query
		obj  *model.Object
		want bool
	}{
		{"empty query matches all", Query{}, noCoords, true},
		{"exclude dup", Query{ExcludeTypes: []string{model.TypeDuplicate}}, dup, false},
		{"exclude name", Query{ExcludeName: "NGC0001"}, galaxy, false},
		{"prefix NGC", Query{NamePrefix: "NGC"}, galaxy, true},
		{"prefix IC", Query{NamePrefix: "IC"}, galaxy, false},
		{"region hit", Query{Region: &reg}, galaxy, true},
		{"region skips no coords", Query{Region: &reg}, noCoords, false},
		{"types", Query{Types: []string{model.TypeGalaxy}}, galaxy, true},
		{"constellation", Query{Constellations: []string{"Ori"}}, galaxy, false},
		{"min size", Query{MinSize: f(2)}, galaxy, false},
		{"max size keeps unknown", Query{MaxSize: f(1)}, noCoords, true},
		{"max size", Query{MaxSize: f(1)}, galaxy, false},
		{"bmag", Query{MaxBMag: f(14)}, galaxy, true},
		{"vmag missing", Query{MaxVMag: f(14)}, galaxy, false},
		{"messier", Query{HasMessier: true}, named, true},
		{"common name like", Query{CommonNameLike: "orion"}, named, true},
		{"with name", Query{WithName: &yes}, galaxy, false},
		{"without name", Query{WithName: &no}, galaxy, true},
		{"ra wrap", Query{RA: Range{Min: f(6), Max: f(0.1)}}, galaxy, true},
		{"ra plain", Query{RA: Range{Min: f(1), Max: f(2)}}, galaxy, false},
		{"dec max", Query{Dec: Range{Max: f(0)}}, named, true},
	}
	for _, tc := range cases {
		if got := tc.q.Matches(tc.obj); got != tc.want {
			t.Fatalf("%s: Matches=%v want %v", tc.name, got, tc.want)
		}
	}
}

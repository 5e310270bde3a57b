package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/mohammed-shakir/ongc/internal/core/model"
	"github.com/mohammed-shakir/ongc/internal/lookup"
	"github.com/mohammed-shakir/ongc/internal/names"
	"github.com/mohammed-shakir/ongc/internal/spatial"
	"github.com/mohammed-shakir/ongc/internal/store/memstore"
)

const schema = `
CREATE TABLE objTypes(type TEXT PRIMARY KEY NOT NULL, typedesc TEXT NOT NULL);
CREATE TABLE objects(
	id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, type TEXT NOT NULL,
	ra REAL, dec REAL, const TEXT, majax REAL, minax REAL, pa INTEGER,
	bmag REAL, vmag REAL, jmag REAL, hmag REAL, kmag REAL, sbrightn REAL, hubble TEXT,
	parallax REAL, pmra REAL, pmdec REAL, radvel REAL, redshift REAL,
	cstarumag REAL, cstarbmag REAL, cstarvmag REAL, messier TEXT, ngc TEXT, ic TEXT,
	cstarnames TEXT, identifiers TEXT, commonnames TEXT, nednotes TEXT, ongcnotes TEXT,
	notngc BOOL DEFAULT FALSE);
CREATE TABLE objIdentifiers(id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL, identifier TEXT NOT NULL UNIQUE);
CREATE UNIQUE INDEX idx_identifiers ON objIdentifiers(identifier);
`

func f(v float64) *float64 { return &v }

func fixtureObjects() []model.Object {
	pa := 112
	return []model.Object{
		{ID: 1, Name: "NGC0001", Type: model.TypeGalaxy, RA: f(0.03169517921621703), Dec: f(0.48359728358363213),
			Constellation: "Peg", MajAx: f(1.57), MinAx: f(1.07), PA: &pa, BMag: f(13.69), VMag: f(12.93),
			Hubble: "Sb", Redshift: f(0.015177), OtherIDs: "2MASX J00071582+2742291,PGC 000564,UGC 00057"},
		{ID: 2, Name: "NGC0002", Type: model.TypeGalaxy, RA: f(0.03178753622246839), Dec: f(0.483078532944845),
			Constellation: "Peg", MajAx: f(1.0), BMag: f(15.0), OtherIDs: "PGC 000567,UGC 00059"},
		{ID: 3, Name: "IC0011", Type: model.TypeDuplicate, NGC: "0281", Constellation: "Cas"},
		{ID: 4, Name: "NGC0281", Type: model.TypeHII, RA: f(0.2295), Dec: f(0.9884), Constellation: "Cas",
			MajAx: f(35), IC: "0011", OtherIDs: "LBN 616,MWSC 0084", CommonNames: "Pacman Nebula"},
		{ID: 5, Name: "NGC6543", Type: model.TypePlanetaryNebula, RA: f(4.6966), Dec: f(1.1646), Constellation: "Dra",
			CStarNames: "HD 164963", CStarVMag: f(11.14), CommonNames: "Cat's Eye Nebula,Snail Nebula"},
		{ID: 6, Name: "NGC5457", Type: model.TypeGalaxy, RA: f(3.6807), Dec: f(0.9483), Constellation: "UMa",
			Messier: "101", MajAx: f(23.99), VMag: f(7.86), CommonNames: "Pinwheel Galaxy", OtherIDs: "PGC 050063"},
		{ID: 7, Name: "NGC7839", Type: model.TypeStar, RA: f(6.2821), Dec: f(0.1745), Constellation: "Peg"},
		{ID: 8, Name: "IC0017", Type: model.TypeNonexistent, NotNGC: true, ONGCNotes: "Not found"},
	}
}

func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func writeFixture(t *testing.T, objs []model.Object) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ongc.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	for code, desc := range model.TypeDescriptions {
		if _, err := db.Exec(`INSERT INTO objTypes VALUES(?,?)`, code, desc); err != nil {
			t.Fatalf("insert type %s: %v", code, err)
		}
	}
	for _, o := range objs {
		_, err := db.Exec(`INSERT INTO objects VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			o.ID, o.Name, o.Type, nullable(o.RA), nullable(o.Dec), o.Constellation,
			nullable(o.MajAx), nullable(o.MinAx), nullable(o.PA),
			nullable(o.BMag), nullable(o.VMag), nullable(o.JMag), nullable(o.HMag), nullable(o.KMag),
			nullable(o.SurfaceBrightness), o.Hubble,
			nullable(o.Parallax), nullable(o.PMRA), nullable(o.PMDec), nullable(o.RadVel), nullable(o.Redshift),
			nullable(o.CStarUMag), nullable(o.CStarBMag), nullable(o.CStarVMag),
			o.Messier, o.NGC, o.IC, o.CStarNames, o.OtherIDs, o.CommonNames, o.NEDNotes, o.ONGCNotes, o.NotNGC)
		if err != nil {
			t.Fatalf("insert %s: %v", o.Name, err)
		}
		ids := []string{strings.ToUpper(o.Name)}
		for _, raw := range strings.Split(o.OtherIDs, ",") {
			if id, err := names.Parse(raw); err == nil && id.Catalog != names.Messier {
				ids = append(ids, id.Key)
			}
		}
		for _, id := range ids {
			if _, err := db.Exec(`INSERT INTO objIdentifiers(name, identifier) VALUES(?,?)`, o.Name, id); err != nil {
				t.Fatalf("insert identifier %s: %v", id, err)
			}
		}
	}
	return path
}

func openFixture(t *testing.T) lookup.Handle {
	t.Helper()
	s, err := New(writeFixture(t, fixtureObjects()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h, err := s.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := h.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return h
}

func TestLookupOne(t *testing.T) {
	h := openFixture(t)
	ctx := context.Background()

	for _, in := range []string{"NGC1", "ngc 0001", "PGC 564", "LEDA564", "UGC 57"} {
		id, err := names.Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		o, err := h.LookupOne(ctx, id)
		if err != nil {
			t.Fatalf("LookupOne(%q): %v", in, err)
		}
		if o.Name != "NGC0001" {
			t.Fatalf("LookupOne(%q)=%s", in, o.Name)
		}
	}

	id, _ := names.Parse("M102")
	o, err := h.LookupOne(ctx, id)
	if err != nil || o.Name != "NGC5457" {
		t.Fatalf("M102: %v %v", o, err)
	}
}

func TestLookupOne_ScansEveryColumn(t *testing.T) {
	h := openFixture(t)
	o, err := h.LookupOne(context.Background(), model.Identifier{Key: "NGC0001"})
	if err != nil {
		t.Fatalf("LookupOne: %v", err)
	}
	want := fixtureObjects()[0]
	want.TypeDesc = "Galaxy"
	if !reflect.DeepEqual(*o, want) {
		t.Fatalf("record differs:\n got %+v\nwant %+v", *o, want)
	}

	pn, err := h.LookupOne(context.Background(), model.Identifier{Key: "NGC6543"})
	if err != nil {
		t.Fatalf("LookupOne: %v", err)
	}
	cs := pn.CentralStar()
	if cs == nil || len(cs.Names) != 1 || cs.VMag == nil || *cs.VMag != 11.14 || cs.UMag != nil {
		t.Fatalf("central star=%+v", cs)
	}
	if pn.RA == nil || pn.MajAx != nil {
		t.Fatalf("NULL handling: ra=%v majax=%v", pn.RA, pn.MajAx)
	}

	nonex, err := h.LookupOne(context.Background(), model.Identifier{Key: "IC0017"})
	if err != nil {
		t.Fatalf("LookupOne: %v", err)
	}
	if nonex.HasCoords() || !nonex.NotNGC {
		t.Fatalf("IC0017=%+v", nonex)
	}
}

func TestLookupOne_NotFound(t *testing.T) {
	h := openFixture(t)
	_, err := h.LookupOne(context.Background(), model.Identifier{Catalog: names.NGCIC, Key: "NGC0001A"})
	var nf *model.NotFoundError
	if !errors.As(err, &nf) || nf.Name != "NGC0001A" {
		t.Fatalf("err=%v want NotFoundError for NGC0001A", err)
	}
	if _, err := h.LookupOne(context.Background(), model.Identifier{Catalog: names.Messier, Key: "110"}); !errors.Is(err, model.ErrObjectNotFound) {
		t.Fatalf("M110: err=%v", err)
	}
}

func TestTypeCounts(t *testing.T) {
	h := openFixture(t)
	tc, err := h.(lookup.Stats).TypeCounts(context.Background())
	if err != nil {
		t.Fatalf("TypeCounts: %v", err)
	}
	got := map[string]int{}
	total := 0
	for _, c := range tc {
		got[c.Type] = c.Count
		total += c.Count
		if c.Description != model.TypeDescriptions[c.Type] {
			t.Fatalf("description of %s = %q", c.Type, c.Description)
		}
	}
	if total != len(fixtureObjects()) || got[model.TypeGalaxy] != 3 {
		t.Fatalf("counts=%v", got)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "nope.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Open(context.Background()); err == nil {
		t.Fatalf("expected error for a missing database file")
	}
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for an empty path")
	}
}

func TestOpen_IsReadOnly(t *testing.T) {
	h := openFixture(t)
	db := h.(*handle).db
	if _, err := db.Exec(`DELETE FROM objects`); err == nil {
		t.Fatalf("write succeeded on a read-only handle")
	}
}

// The SQL rendering of a Query must select exactly what Query.Matches does.
func TestLookupMany_AgreesWithMatches(t *testing.T) {
	h := openFixture(t)
	mem, err := memstore.New(fixtureObjects())
	if err != nil {
		t.Fatalf("memstore: %v", err)
	}
	ctx := context.Background()
	yes, no := true, false

	near := spatial.BuildRegion(0.0317, 0.4836, 1)
	seam := spatial.BuildRegion(0.0005, 0.17, 2)
	queries := map[string]lookup.Query{
		"all":              {},
		"no dups":          {ExcludeTypes: []string{model.TypeDuplicate}},
		"types":            {Types: []string{model.TypeGalaxy, model.TypeHII}},
		"exclude name":     {ExcludeName: "NGC0001", Region: &near},
		"prefix":           {NamePrefix: "ic"},
		"messier":          {HasMessier: true, OrderBy: lookup.OrderMessier},
		"region":           {Region: &near},
		"seam region":      {Region: &seam},
		"constellations":   {Constellations: []string{"Peg", "Cas"}},
		"min size":         {MinSize: f(1.5)},
		"max size":         {MaxSize: f(1.5)},
		"bmag":             {MaxBMag: f(14)},
		"vmag":             {MaxVMag: f(8)},
		"ra range":         {RA: lookup.Range{Min: f(3), Max: f(5)}},
		"ra wrap":          {RA: lookup.Range{Min: f(6), Max: f(0.1)}},
		"dec range":        {Dec: lookup.Range{Min: f(0.9), Max: f(1.0)}},
		"common name like": {CommonNameLike: "nebula"},
		"like escapes":     {CommonNameLike: "cat's"},
		"like wildcard":    {CommonNameLike: "%"},
		"with name":        {WithName: &yes},
		"without name":     {WithName: &no},
		"ordered by name":  {ExcludeTypes: []string{model.TypeNonexistent}, OrderBy: lookup.OrderName},
	}
	for name, q := range queries {
		t.Run(name, func(t *testing.T) {
			got, err := h.LookupMany(ctx, q)
			if err != nil {
				t.Fatalf("sqlite: %v", err)
			}
			want, _ := mem.LookupMany(ctx, q)
			if q.OrderBy == lookup.OrderNone {
				sort.Strings(got)
				sort.Strings(want)
			}
			if len(got) == 0 && len(want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("sqlite %v\n memstore %v", got, want)
			}
		})
	}
}

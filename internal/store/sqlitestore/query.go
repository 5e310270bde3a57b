package sqlitestore

import (
	"database/sql"
	"strings"

	"github.com/mohammed-shakir/ongc/internal/core/model"
	"github.com/mohammed-shakir/ongc/internal/lookup"
)

// buildWhere renders q as a WHERE clause with positional parameters. It must
// agree with lookup.Query.Matches.
func buildWhere(q lookup.Query) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, a ...any) {
		conds = append(conds, cond)
		args = append(args, a...)
	}

	if len(q.ExcludeTypes) > 0 {
		add("type NOT IN ("+placeholders(len(q.ExcludeTypes))+")", strArgs(q.ExcludeTypes)...)
	}
	if len(q.Types) > 0 {
		add("type IN ("+placeholders(len(q.Types))+")", strArgs(q.Types)...)
	}
	if q.ExcludeName != "" {
		add("name != ?", q.ExcludeName)
	}
	if q.NamePrefix != "" {
		add("name LIKE ? ESCAPE '\\'", escapeLike(q.NamePrefix)+"%")
	}
	if q.HasMessier {
		add("messier != ''")
	}
	if r := q.Region; r != nil {
		if r.Wrapped {
			add("(ra <= ? OR ra >= ?)", r.RA.Hi, r.RA.Lo)
		} else {
			add("(ra BETWEEN ? AND ?)", r.RA.Lo, r.RA.Hi)
		}
		add("(dec BETWEEN ? AND ?)", r.Dec.Lo, r.Dec.Hi)
	}
	if len(q.Constellations) > 0 {
		add("const IN ("+placeholders(len(q.Constellations))+")", strArgs(q.Constellations)...)
	}
	if q.MinSize != nil {
		add("majax >= ?", *q.MinSize)
	}
	if q.MaxSize != nil {
		add("(majax < ? OR majax IS NULL)", *q.MaxSize)
	}
	if q.MaxBMag != nil {
		add("bmag <= ?", *q.MaxBMag)
	}
	if q.MaxVMag != nil {
		add("vmag <= ?", *q.MaxVMag)
	}
	switch {
	case q.RA.Min != nil && q.RA.Max != nil && *q.RA.Min > *q.RA.Max:
		add("(ra >= ? OR ra <= ?)", *q.RA.Min, *q.RA.Max)
	default:
		if q.RA.Min != nil {
			add("ra >= ?", *q.RA.Min)
		}
		if q.RA.Max != nil {
			add("ra <= ?", *q.RA.Max)
		}
	}
	if q.Dec.Min != nil {
		add("dec >= ?", *q.Dec.Min)
	}
	if q.Dec.Max != nil {
		add("dec <= ?", *q.Dec.Max)
	}
	if q.CommonNameLike != "" {
		add("commonnames LIKE ? ESCAPE '\\'", "%"+escapeLike(q.CommonNameLike)+"%")
	}
	if q.WithName != nil {
		if *q.WithName {
			add("commonnames != ''")
		} else {
			add("(commonnames = '' OR commonnames IS NULL)")
		}
	}

	if len(conds) == 0 {
		return "1", nil
	}
	return strings.Join(conds, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func strArgs(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanObject(row scanner) (*model.Object, error) {
	var (
		o                                       model.Object
		ra, dec, majax, minax                   sql.NullFloat64
		bmag, vmag, jmag, hmag, kmag, sbrightn  sql.NullFloat64
		parallax, pmra, pmdec, radvel, redshift sql.NullFloat64
		cstarumag, cstarbmag, cstarvmag         sql.NullFloat64
		pa                                      sql.NullInt64
		constellation, hubble, messier, ngc, ic sql.NullString
		cstarnames, identifiers, commonnames    sql.NullString
		nednotes, ongcnotes                     sql.NullString
		notngc                                  sql.NullBool
	)
	err := row.Scan(
		&o.ID, &o.Name, &o.Type, &o.TypeDesc, &ra, &dec, &constellation,
		&majax, &minax, &pa, &bmag, &vmag, &jmag, &hmag, &kmag, &sbrightn, &hubble, &parallax,
		&pmra, &pmdec, &radvel, &redshift, &cstarumag, &cstarbmag, &cstarvmag, &messier,
		&ngc, &ic, &cstarnames, &identifiers, &commonnames, &nednotes, &ongcnotes, &notngc,
	)
	if err != nil {
		return nil, err
	}

	o.RA, o.Dec = ptrF(ra), ptrF(dec)
	o.Constellation = constellation.String
	o.MajAx, o.MinAx = ptrF(majax), ptrF(minax)
	if pa.Valid {
		v := int(pa.Int64)
		o.PA = &v
	}
	o.BMag, o.VMag, o.JMag, o.HMag, o.KMag = ptrF(bmag), ptrF(vmag), ptrF(jmag), ptrF(hmag), ptrF(kmag)
	o.SurfaceBrightness = ptrF(sbrightn)
	o.Hubble = hubble.String
	o.Parallax, o.PMRA, o.PMDec = ptrF(parallax), ptrF(pmra), ptrF(pmdec)
	o.RadVel, o.Redshift = ptrF(radvel), ptrF(redshift)
	o.CStarUMag, o.CStarBMag, o.CStarVMag = ptrF(cstarumag), ptrF(cstarbmag), ptrF(cstarvmag)
	o.CStarNames = cstarnames.String
	o.Messier = messier.String
	o.NGC, o.IC = ngc.String, ic.String
	o.OtherIDs = identifiers.String
	o.CommonNames = commonnames.String
	o.NEDNotes, o.ONGCNotes = nednotes.String, ongcnotes.String
	o.NotNGC = notngc.Valid && notngc.Bool
	return &o, nil
}

func ptrF(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

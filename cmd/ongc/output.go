package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mohammed-shakir/ongc/internal/coords"
	"github.com/mohammed-shakir/ongc/internal/core/model"
	"github.com/mohammed-shakir/ongc/internal/search"
)

// objectJSON is a record plus its derived text views.
type objectJSON struct {
	*model.Object
	RAText      string             `json:"ra_text"`
	DecText     string             `json:"dec_text"`
	Identifiers model.CrossIDs     `json:"cross_ids"`
	CentralStar *model.CentralStar `json:"central_star,omitempty"`
}

type neighborJSON struct {
	Object     objectJSON `json:"object"`
	Separation float64    `json:"separation_deg"`
}

func objectView(o *model.Object) objectJSON {
	v := objectJSON{Object: o, Identifiers: o.Identifiers(), CentralStar: o.CentralStar()}
	v.RAText, v.DecText = coords.Format(o.RA, o.Dec)
	return v
}

func neighborViews(ns []model.Neighbor) []neighborJSON {
	out := make([]neighborJSON, len(ns))
	for i, n := range ns {
		out[i] = neighborJSON{Object: objectView(n.Object), Separation: n.Separation}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeObject(w io.Writer, o *model.Object) error {
	ra, dec := coords.Format(o.RA, o.Dec)
	ids := o.Identifiers()
	var b strings.Builder
	fmt.Fprintln(&b, o)
	fmt.Fprintf(&b, "R.A.: %s  Dec.: %s\n", ra, dec)
	if ids.Messier != "" {
		fmt.Fprintf(&b, "Messier: %s\n", ids.Messier)
	}
	if len(ids.NGC) > 0 {
		fmt.Fprintf(&b, "NGC: %s\n", strings.Join(ids.NGC, ", "))
	}
	if len(ids.IC) > 0 {
		fmt.Fprintf(&b, "IC: %s\n", strings.Join(ids.IC, ", "))
	}
	if len(ids.CommonNames) > 0 {
		fmt.Fprintf(&b, "Common names: %s\n", strings.Join(ids.CommonNames, ", "))
	}
	if len(ids.Other) > 0 {
		fmt.Fprintf(&b, "Other identifiers: %s\n", strings.Join(ids.Other, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeNeighbors(w io.Writer, ns []model.Neighbor, radius float64, catalog string) error {
	if len(ns) == 0 {
		_, err := fmt.Fprintln(w, "No objects found within search radius!")
		return err
	}
	var b strings.Builder
	for _, n := range ns {
		fmt.Fprintf(&b, "%.2f° --> %s\n", n.Separation, n.Object)
	}
	filter := ""
	if c := strings.ToUpper(catalog); c != "" && c != "ALL" {
		filter = " and showing " + c + " objects only"
	}
	fmt.Fprintf(&b, "(using a search radius of %g arcmin%s)\n", radius, filter)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeObjectList(w io.Writer, objs []*model.Object) error {
	if len(objs) == 0 {
		_, err := fmt.Fprintln(w, "No objects found with such parameters!")
		return err
	}
	var b strings.Builder
	for _, o := range objs {
		fmt.Fprintln(&b, o)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeStats(w io.Writer, st search.Stats) error {
	var b strings.Builder
	fmt.Fprintf(&b, "ongc version: %s\n", Version)
	fmt.Fprintf(&b, "Database version: %s\n", st.DatasetVersion)
	fmt.Fprintf(&b, "Total number of objects in database: %d\n", st.Total)
	fmt.Fprintln(&b, "Object types statistics:")
	for _, tc := range st.ByType {
		fmt.Fprintf(&b, "\t%-29s-> %d\n", tc.Description, tc.Count)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

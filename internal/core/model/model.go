// Package model defines core domain types shared across the catalog packages.
package model

import (
	"fmt"
	"strings"
)

// Object type codes as stored in the catalog.
const (
	TypeStar             = "*"
	TypeDoubleStar       = "**"
	TypeAssociation      = "*Ass"
	TypeOpenCluster      = "OCl"
	TypeGlobularCluster  = "GCl"
	TypeClusterNebula    = "Cl+N"
	TypeGalaxy           = "G"
	TypeGalaxyPair       = "GPair"
	TypeGalaxyTriplet    = "GTrpl"
	TypeGalaxyGroup      = "GGroup"
	TypePlanetaryNebula  = "PN"
	TypeHII              = "HII"
	TypeDarkNebula       = "DrkN"
	TypeEmissionNebula   = "EmN"
	TypeNebula           = "Neb"
	TypeReflectionNebula = "RfN"
	TypeSupernovaRemnant = "SNR"
	TypeNova             = "Nova"
	TypeNonexistent      = "NonEx"
	TypeOther            = "Other"
	TypeDuplicate        = "Dup"
)

// TypeDescriptions maps type codes to their long form.
var TypeDescriptions = map[string]string{
	TypeStar:             "Star",
	TypeDoubleStar:       "Double star",
	TypeAssociation:      "Association of stars",
	TypeOpenCluster:      "Open Cluster",
	TypeGlobularCluster:  "Globular Cluster",
	TypeClusterNebula:    "Star cluster + Nebula",
	TypeGalaxy:           "Galaxy",
	TypeGalaxyPair:       "Galaxy Pair",
	TypeGalaxyTriplet:    "Galaxy Triplet",
	TypeGalaxyGroup:      "Group of galaxies",
	TypePlanetaryNebula:  "Planetary Nebula",
	TypeHII:              "HII Ionized region",
	TypeDarkNebula:       "Dark Nebula",
	TypeEmissionNebula:   "Emission Nebula",
	TypeNebula:           "Nebula",
	TypeReflectionNebula: "Reflection Nebula",
	TypeSupernovaRemnant: "Supernova remnant",
	TypeNova:             "Nova star",
	TypeNonexistent:      "Nonexistent object",
	TypeOther:            "Object of other/unknown type",
	TypeDuplicate:        "Duplicated record",
}

// Identifier is the result of recognizing free-form text: the catalog tag and
// the canonical key used for the store lookup.
type Identifier struct {
	Catalog string
	Key     string
}

func (id Identifier) String() string {
	return id.Catalog + ":" + id.Key
}

// Object is one row of the catalog. Optional numeric attributes are nil
// when the catalog has no value for them.
type Object struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	TypeDesc      string   `json:"type_desc"`
	RA            *float64 `json:"ra,omitempty"`
	Dec           *float64 `json:"dec,omitempty"`
	Constellation string   `json:"constellation"`

	MajAx *float64 `json:"majax,omitempty"`
	MinAx *float64 `json:"minax,omitempty"`
	PA    *int     `json:"pa,omitempty"`

	BMag *float64 `json:"bmag,omitempty"`
	VMag *float64 `json:"vmag,omitempty"`
	JMag *float64 `json:"jmag,omitempty"`
	HMag *float64 `json:"hmag,omitempty"`
	KMag *float64 `json:"kmag,omitempty"`

	SurfaceBrightness *float64 `json:"sbrightn,omitempty"`
	Hubble            string   `json:"hubble,omitempty"`
	Parallax          *float64 `json:"parallax,omitempty"`
	PMRA              *float64 `json:"pmra,omitempty"`
	PMDec             *float64 `json:"pmdec,omitempty"`
	RadVel            *float64 `json:"radvel,omitempty"`
	Redshift          *float64 `json:"redshift,omitempty"`

	CStarUMag  *float64 `json:"cstarumag,omitempty"`
	CStarBMag  *float64 `json:"cstarbmag,omitempty"`
	CStarVMag  *float64 `json:"cstarvmag,omitempty"`
	CStarNames string   `json:"cstarnames,omitempty"`

	Messier     string `json:"messier,omitempty"`
	NGC         string `json:"ngc,omitempty"`
	IC          string `json:"ic,omitempty"`
	OtherIDs    string `json:"identifiers,omitempty"`
	CommonNames string `json:"commonnames,omitempty"`
	NEDNotes    string `json:"nednotes,omitempty"`
	ONGCNotes   string `json:"ongcnotes,omitempty"`
	NotNGC      bool   `json:"notngc"`
}

func (o *Object) String() string {
	return fmt.Sprintf("%s, %s in %s", o.Name, o.TypeDesc, o.Constellation)
}

// HasCoords reports whether both RA and Dec are present.
func (o *Object) HasCoords() bool {
	return o != nil && o.RA != nil && o.Dec != nil
}

func (o *Object) IsDuplicate() bool { return o.Type == TypeDuplicate }

// CrossIDs lists every cross identifier of an object, split out of the
// comma-delimited catalog fields.
type CrossIDs struct {
	Messier     string
	NGC         []string
	IC          []string
	CommonNames []string
	Other       []string
}

func (o *Object) Identifiers() CrossIDs {
	var ids CrossIDs
	if o.Messier != "" {
		ids.Messier = "M" + o.Messier
	}
	for _, n := range splitList(o.NGC) {
		ids.NGC = append(ids.NGC, "NGC"+n)
	}
	for _, n := range splitList(o.IC) {
		ids.IC = append(ids.IC, "IC"+n)
	}
	ids.CommonNames = splitList(o.CommonNames)
	ids.Other = splitList(o.OtherIDs)
	return ids
}

// CentralStar holds data about the central star of a planetary nebula.
type CentralStar struct {
	Names []string
	UMag  *float64
	BMag  *float64
	VMag  *float64
}

// CentralStar returns nil unless the object is a planetary nebula.
func (o *Object) CentralStar() *CentralStar {
	if o.Type != TypePlanetaryNebula {
		return nil
	}
	return &CentralStar{
		Names: splitList(o.CStarNames),
		UMag:  o.CStarUMag,
		BMag:  o.CStarBMag,
		VMag:  o.CStarVMag,
	}
}

// Neighbor is one entry of a proximity search result.
type Neighbor struct {
	Object     *Object `json:"object"`
	Separation float64 `json:"separation_deg"`
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

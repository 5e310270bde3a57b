package main

import (
	"github.com/soniakeys/unit"
	"github.com/spf13/cobra"

	"github.com/mohammed-shakir/ongc/internal/coords"
	"github.com/mohammed-shakir/ongc/internal/search"
)

type searchFlags struct {
	catalog        string
	types          []string
	constellations []string
	minSize        float64
	maxSize        float64
	upToBMag       float64
	upToVMag       float64
	minRA, maxRA   string
	minDec, maxDec string
	named          string
	withName       bool
	withoutName    bool
}

func newSearchCmd(a *app, flags *rootFlags) *cobra.Command {
	var sf searchFlags
	cmd := &cobra.Command{
		Use:     "search",
		Aliases: []string{"list"},
		Short:   "Search the catalog for objects with given parameters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := sf.filter(cmd)
			if err != nil {
				return err
			}
			objs, err := a.svc.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			if flags.json {
				views := make([]objectJSON, len(objs))
				for i, o := range objs {
					views[i] = objectView(o)
				}
				return writeJSON(cmd.OutOrStdout(), views)
			}
			return writeObjectList(cmd.OutOrStdout(), objs)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&sf.catalog, "catalog", "", "list only objects from a specific catalog (NGC, IC, M)")
	fl.StringSliceVar(&sf.types, "type", nil, "list only objects of these OpenNGC types (comma separated)")
	fl.StringSliceVar(&sf.constellations, "constellation", nil, "list only objects in these constellations (comma separated)")
	fl.Float64Var(&sf.minSize, "minsize", 0, "list only objects with major axis >= minsize (arcmin)")
	fl.Float64Var(&sf.maxSize, "maxsize", 0, "list only objects with major axis < maxsize (arcmin) or unknown")
	fl.Float64Var(&sf.upToBMag, "uptobmag", 0, "list only objects with B-Mag brighter than value")
	fl.Float64Var(&sf.upToVMag, "uptovmag", 0, "list only objects with V-Mag brighter than value")
	fl.StringVar(&sf.minRA, "minra", "", "list only objects with min R.A. HH:MM:SS[.ss]")
	fl.StringVar(&sf.maxRA, "maxra", "", "list only objects with max R.A. HH:MM:SS[.ss]")
	fl.StringVar(&sf.minDec, "mindec", "", "list only objects above declination +/-DD:MM:SS[.s]")
	fl.StringVar(&sf.maxDec, "maxdec", "", "list only objects below declination +/-DD:MM:SS[.s]")
	fl.StringVarP(&sf.named, "named", "n", "", "list only objects with a common name like the input")
	fl.BoolVarP(&sf.withName, "withname", "N", false, "list only objects with a common name")
	fl.BoolVar(&sf.withoutName, "withoutname", false, "list only objects without a common name")
	cmd.MarkFlagsMutuallyExclusive("withname", "withoutname")
	return cmd
}

// filter turns the flags that were actually set into a search.Filter.
func (sf *searchFlags) filter(cmd *cobra.Command) (search.Filter, error) {
	set := cmd.Flags().Changed
	f := search.Filter{
		Catalog:        sf.catalog,
		Types:          sf.types,
		Constellations: sf.constellations,
		CommonName:     sf.named,
	}
	if set("minsize") {
		f.MinSize = &sf.minSize
	}
	if set("maxsize") {
		f.MaxSize = &sf.maxSize
	}
	if set("uptobmag") {
		f.MaxBMag = &sf.upToBMag
	}
	if set("uptovmag") {
		f.MaxVMag = &sf.upToVMag
	}
	switch {
	case sf.withName:
		v := true
		f.WithName = &v
	case sf.withoutName:
		v := false
		f.WithName = &v
	}

	var err error
	if f.MinRA, err = degrees(sf.minRA, coords.ParseRA); err != nil {
		return f, err
	}
	if f.MaxRA, err = degrees(sf.maxRA, coords.ParseRA); err != nil {
		return f, err
	}
	if f.MinDec, err = degrees(sf.minDec, coords.ParseDec); err != nil {
		return f, err
	}
	if f.MaxDec, err = degrees(sf.maxDec, coords.ParseDec); err != nil {
		return f, err
	}
	return f, nil
}

func degrees(text string, parse func(string) (float64, error)) (*float64, error) {
	if text == "" {
		return nil, nil
	}
	rad, err := parse(text)
	if err != nil {
		return nil, err
	}
	d := unit.Angle(rad).Deg()
	return &d, nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mohammed-shakir/ongc/internal/search"
)

func newViewCmd(a *app, flags *rootFlags) *cobra.Command {
	var keepDup bool
	cmd := &cobra.Command{
		Use:   "view NAME",
		Short: "Print out object information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.svc.Get(cmd.Context(), args[0], keepDup)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), objectView(o))
			}
			return writeObject(cmd.OutOrStdout(), o)
		},
	}
	cmd.Flags().BoolVar(&keepDup, "keep-dup", false, "show duplicate records as they are instead of their main object")
	return cmd
}

func newNeighborsCmd(a *app, flags *rootFlags) *cobra.Command {
	var (
		radius  float64
		catalog string
	)
	cmd := &cobra.Command{
		Use:   "neighbors NAME",
		Short: "List objects in proximity of another object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := a.svc.Neighbors(cmd.Context(), args[0], radius, catalog)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), neighborViews(ns))
			}
			return writeNeighbors(cmd.OutOrStdout(), ns, radius, catalog)
		},
	}
	cmd.Flags().Float64Var(&radius, "radius", 30,
		fmt.Sprintf("maximum separation from the starting object (arcmin, at most %d)", search.MaxRadiusArcmin))
	cmd.Flags().StringVar(&catalog, "catalog", "all", "search only for NGC or IC objects (all, NGC, IC)")
	return cmd
}

func newNearbyCmd(a *app, flags *rootFlags) *cobra.Command {
	var (
		radius  float64
		catalog string
	)
	cmd := &cobra.Command{
		Use:   "nearby RA DEC",
		Short: "List objects in proximity of given J2000 coordinates",
		Long:  "Coordinates must be expressed as HH:MM:SS(.SS) +/-DD:MM:SS(.S).",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := a.svc.Nearby(cmd.Context(), strings.Join(args, " "), radius, catalog)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), neighborViews(ns))
			}
			return writeNeighbors(cmd.OutOrStdout(), ns, radius, catalog)
		},
	}
	// negative declinations would otherwise be read as shorthand flags
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().Float64Var(&radius, "radius", 60,
		fmt.Sprintf("maximum separation from the coordinates (arcmin, at most %d)", search.MaxRadiusArcmin))
	cmd.Flags().StringVar(&catalog, "catalog", "all", "search only for NGC or IC objects (all, NGC, IC)")
	return cmd
}

func newSeparationCmd(a *app, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "separation NAME1 NAME2",
		Short: "Return the apparent angular separation between two objects",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sep, err := a.svc.Separation(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), sep)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Apparent angular separation between %s and %s is:\n%s\n",
				sep.From, sep.To, sep)
			return err
		},
	}
}

func newStatsCmd(a *app, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.svc.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), st)
			}
			return writeStats(cmd.OutOrStdout(), st)
		},
	}
}

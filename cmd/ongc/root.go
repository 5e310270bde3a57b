package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	dbPath   string
	logLevel string
	json     bool
}

func newRootCmd(a *app) *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "ongc",
		Short:         "Query the OpenNGC catalog",
		Long:          "ongc identifies deep-sky objects from the NGC, IC and related catalogs and finds objects near one another or near a sky position.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context(), flags)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}

	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "path to the catalog database (default $ONGC_DB_PATH or ./ongc.db)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error (default $LOG_LEVEL)")
	root.PersistentFlags().BoolVar(&flags.json, "json", false, "print results as JSON")

	root.AddCommand(
		newViewCmd(a, &flags),
		newNeighborsCmd(a, &flags),
		newNearbyCmd(a, &flags),
		newSeparationCmd(a, &flags),
		newSearchCmd(a, &flags),
		newStatsCmd(a, &flags),
	)
	return root
}

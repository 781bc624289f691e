package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"veneya/store"
)

func newZoneCmd(opts *options) *cobra.Command {
	var (
		lat, lng float64
		decimals int
	)

	cmd := &cobra.Command{
		Use:     "zone",
		Short:   "Print the zone label of a coordinate pair",
		Example: `  veneya zone --lat 19.43 --lng=-99.13`,
		RunE: func(cmd *cobra.Command, args []string) error {
			zone, err := store.GridResolver{Decimals: decimals}.Resolve(lat, lng)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), zone)
			return err
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	cmd.Flags().IntVar(&decimals, "decimals", store.DefaultZoneDecimals, "grid precision in decimal places")
	cmd.MarkFlagRequired("lat")
	cmd.MarkFlagRequired("lng")
	return cmd
}

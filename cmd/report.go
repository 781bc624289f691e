package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"veneya/models"
	"veneya/store"
)

func newReportCmd(opts *options) *cobra.Command {
	var f store.ReportFilter

	cmd := &cobra.Command{
		Use:   "report [zone]",
		Short: "Print earnings per zone, or one zone by product",
		Long: `Without arguments prints every zone with its total earnings, best first
(or worst first with --lowest).
With a zone prints the products sold there and the zone's grand total.

Example:
  veneya report --limit 3
  veneya report --limit 3 --lowest
  veneya report Zone_19.4_-99.2 --account 1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if len(args) == 0 {
				zones, err := s.ZoneEarningsSummary(cmd.Context(), f)
				if err != nil {
					return err
				}
				return printSummary(cmd.OutOrStdout(), zones)
			}

			detail, err := s.ZoneDetail(cmd.Context(), args[0], f)
			if err != nil {
				return err
			}
			return printDetail(cmd.OutOrStdout(), detail)
		},
	}

	cmd.Flags().Int64Var(&f.AccountID, "account", 0, "only count sales of this account id")
	cmd.Flags().IntVar(&f.Limit, "limit", 0, "show at most this many zones")
	cmd.Flags().BoolVar(&f.Lowest, "lowest", false, "rank the lowest earning zones first")
	return cmd
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func printSummary(out io.Writer, zones []models.ZoneSummary) error {
	if len(zones) == 0 {
		_, err := fmt.Fprintln(out, "no sales recorded")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ZONE\tEARNINGS")
	for _, z := range zones {
		fmt.Fprintf(tw, "%s\t%s\n", z.Zone, money(z.Earnings))
	}
	return tw.Flush()
}

func printDetail(out io.Writer, d *models.ZoneDetail) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", d.Zone)
	fmt.Fprintln(tw, "PRODUCT\tQUANTITY\tEARNINGS")
	for _, p := range d.Products {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", p.ProductName, p.Quantity, money(p.Earnings))
	}
	fmt.Fprintf(tw, "TOTAL\t\t%s\n", money(d.GrandTotal))
	return tw.Flush()
}

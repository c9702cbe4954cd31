package cmd

import (
	"github.com/spf13/cobra"
)

func NewEOPCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eop",
		Short: "Show the Earth orientation parameters used at --time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEOP(rootOpts, cmd)
		},
	}
}

func runEOP(opts *RootOptions, cmd *cobra.Command) error {
	utc, err := opts.instant()
	if err != nil {
		return err
	}
	conv := opts.converter()

	dut1, err := conv.UT1UTCOffset(utc)
	if err != nil {
		return err
	}
	x, y, err := conv.PolarMotion(utc)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printField(w, "MJD", "%.5f", utc.MJD().Float64())
	printField(w, "UT1-UTC", "%.7f s", dut1)
	printField(w, "TAI-UTC", "%d s", conv.TimeScales().LeapSeconds(utc))
	printField(w, "pole x", "%.6f\"", x)
	printField(w, "pole y", "%.6f\"", y)
	return nil
}

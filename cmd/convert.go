package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/echoflaresat/earthframes/earth"
	"github.com/echoflaresat/earthframes/timescale"
	"github.com/echoflaresat/earthframes/vectors"
)

func NewECIToECEFCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eci2ecef <x> <y> <z>",
		Short: "Rotate a GCRS position into the ITRS",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, cmd, args, "ECI", "ECEF", (*earth.Converter).ECIToECEF)
		},
	}
}

func NewECEFToECICommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ecef2eci <x> <y> <z>",
		Short: "Map an ITRS position back into the GCRS",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, cmd, args, "ECEF", "ECI", (*earth.Converter).ECEFToECI)
		},
	}
}

type convertFunc func(*earth.Converter, vectors.Vec3, timescale.Instant) (vectors.Vec3, error)

func runConvert(opts *RootOptions, cmd *cobra.Command, args []string, from, to string, convert convertFunc) error {
	in, err := parseVec3(args)
	if err != nil {
		return err
	}
	utc, err := opts.instant()
	if err != nil {
		return err
	}

	conv := opts.converter()
	ut1, err := conv.UTCToUT1(utc)
	if err != nil {
		return err
	}
	out, err := convert(conv, in, ut1)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printField(w, "UTC", "%s", utc.Time().Format("2006-01-02T15:04:05.000Z07:00"))
	printVector(w, from, in)
	printVector(w, to, out)
	return nil
}

func parseVec3(args []string) (vectors.Vec3, error) {
	xyz := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return vectors.Vec3{}, fmt.Errorf("invalid coordinate %q: %w", a, err)
		}
		xyz[i] = v
	}
	return vectors.FromSlice(xyz)
}

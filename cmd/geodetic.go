package cmd

import (
	"github.com/spf13/cobra"

	"github.com/echoflaresat/earthframes/earth"
)

type geodeticOptions struct {
	inverse bool
}

func NewGeodeticCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &geodeticOptions{}

	cmd := &cobra.Command{
		Use:   "geodetic <lat> <lon> <alt>",
		Short: "Convert WGS84 latitude, longitude and altitude to ECEF",
		Long: `Convert WGS84 geodetic coordinates (degrees, metres) to an ECEF
position in metres. With --inverse the arguments are x y z and the result
is geodetic.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeodetic(opts, cmd, args)
		},
	}
	cmd.Flags().BoolVarP(&opts.inverse, "inverse", "i", false, "convert ECEF x y z to geodetic")
	return cmd
}

func runGeodetic(opts *geodeticOptions, cmd *cobra.Command, args []string) error {
	v, err := parseVec3(args)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if opts.inverse {
		g := earth.ECEFToGeodetic(v)
		printField(w, "latitude", "%.8f", g.Latitude)
		printField(w, "longitude", "%.8f", g.Longitude)
		printField(w, "altitude", "%.4f m", g.Altitude)
		return nil
	}

	ecef := earth.GeodeticToECEF(earth.Geodetic{Latitude: v.X, Longitude: v.Y, Altitude: v.Z})
	printVector(w, "ECEF", ecef)
	return nil
}

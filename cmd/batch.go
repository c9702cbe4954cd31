package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/echoflaresat/earthframes/earth"
	"github.com/echoflaresat/earthframes/timescale"
)

type batchOptions struct {
	inverse bool
}

func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Convert many positions read from a file or stdin",
		Long: `Convert one position per line. Each line is "x y z" optionally
followed by an RFC 3339 UTC time; lines without a time use --time. Blank
lines and lines starting with # are skipped. Results are written one
"x y z" line per input line, in input order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runBatch(rootOpts, opts, cmd, in)
		},
	}
	cmd.Flags().BoolVarP(&opts.inverse, "inverse", "i", false, "convert ECEF to ECI instead of ECI to ECEF")
	return cmd
}

func runBatch(rootOpts *RootOptions, opts *batchOptions, cmd *cobra.Command, in io.Reader) error {
	conv := rootOpts.converter()
	samples, err := readSamples(in, rootOpts, conv)
	if err != nil {
		return err
	}

	convert := conv.ECIToECEFBatch
	if opts.inverse {
		convert = conv.ECEFToECIBatch
	}
	out, err := convert(cmd.Context(), samples)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, v := range out {
		fmt.Fprintf(w, "%.4f %.4f %.4f\n", v.X, v.Y, v.Z)
	}
	printNote(cmd.ErrOrStderr(), "converted %d positions", len(out))
	return nil
}

func readSamples(in io.Reader, rootOpts *RootOptions, conv *earth.Converter) ([]earth.Sample, error) {
	var (
		samples []earth.Sample
		deflt   *timescale.Instant
	)

	sc := bufio.NewScanner(in)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 && len(fields) != 4 {
			return nil, fmt.Errorf("line %d: expected x y z [time], got %d fields", lineNo, len(fields))
		}
		pos, err := parseVec3(fields[:3])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		var utc timescale.Instant
		if len(fields) == 4 {
			if utc, err = parseUTC(fields[3]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		} else {
			if deflt == nil {
				t, err := rootOpts.instant()
				if err != nil {
					return nil, err
				}
				deflt = &t
			}
			utc = *deflt
		}

		ut1, err := conv.UTCToUT1(utc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		samples = append(samples, earth.Sample{Position: pos, At: ut1})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

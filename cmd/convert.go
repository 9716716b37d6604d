package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nconklindev/tabconv/internal/converter"
	"github.com/nconklindev/tabconv/internal/metrics"
)

type convertFlags struct {
	to              string
	force           bool
	metricsTextfile string
}

func (c *cli) newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert FILE...",
		Short: "Convert files to another format",
		Long: `Convert each FILE to the target format. The output is written next to
the input with the target extension; an existing output file is kept unless
--force is given.`,
		Example: `  tabconv convert report.csv --to xlsx
  tabconv convert q1.xlsx q2.xlsx --to .csv --force`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.to, "to", "t", "", "target format (csv, txt, xlsx); defaults to the configured target")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing output files")
	cmd.Flags().StringVar(&flags.metricsTextfile, "metrics-textfile", "", "write conversion metrics to this file")

	return cmd
}

func (c *cli) runConvert(cmd *cobra.Command, args []string, flags *convertFlags) error {
	to := flags.to
	if to == "" {
		to = c.conf.Conversion.DefaultTarget
	}

	target, err := converter.ParseExtension(to)
	if err != nil {
		return err
	}

	log, err := c.newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer c.close()

	reporter, err := metrics.NewReporter()
	if err != nil {
		return err
	}

	conv, err := c.newConverter(flags.force, reporter, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range args {
		result, err := conv.Convert(path, target)
		if err != nil {
			failed++
			printf(out, "✗ %s: %s: %v\n", path, converter.KindOf(err), err)
			continue
		}

		printf(out, "✓ %s -> %s (%s, %s)\n",
			result.InputFile,
			result.OutputFile,
			humanize.Bytes(uint64(result.BytesWritten)),
			rowsLabel(result.RowsProcessed),
		)
	}

	textfile := flags.metricsTextfile
	if textfile == "" {
		textfile = c.conf.Metrics.Textfile
	}
	if textfile != "" {
		if err := reporter.WriteTextfile(textfile); err != nil {
			log.Error(err, "Failed to write metrics.")
		}
	}

	if failed > 0 {
		return errors.Errorf("%d of %d conversions failed", failed, len(args))
	}

	return nil
}

func rowsLabel(rows int) string {
	if rows == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%s rows", humanize.Comma(int64(rows)))
}

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nconklindev/tabconv/internal/config"
	"github.com/nconklindev/tabconv/internal/converter"
	"github.com/nconklindev/tabconv/internal/logger"
)

type cli struct {
	fs afero.Fs

	configPath string
	logLevel   string
	logFormat  string

	conf    *config.Config
	logFile io.Closer
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	c := &cli{fs: afero.NewOsFs()}

	root := &cobra.Command{
		Use:   "tabconv",
		Short: "Convert tabular files between TXT, CSV and XLSX",
		Long: `tabconv converts tabular files between plain text, CSV and Excel
workbooks. The output is written next to the input with the new extension.

Run without a command to pick a file interactively.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.initConfig,
		RunE:              c.runUI,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", config.DefaultPath(), "path to the configuration file")
	flags.StringVar(&c.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&c.logFormat, "log-format", "", "log format (text, json)")

	root.AddCommand(
		c.newConvertCommand(),
		c.newFormatsCommand(),
		c.newUICommand(),
		newVersionCommand(),
	)

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (c *cli) initConfig(cmd *cobra.Command, args []string) error {
	// Only a file the user asked for has to exist.
	mustExist := cmd.Flags().Changed("config")

	conf, err := config.Load(c.fs, c.configPath, mustExist)
	if err != nil {
		return err
	}

	if c.logLevel != "" {
		conf.Log.Level = c.logLevel
	}
	if c.logFormat != "" {
		conf.Log.Format = c.logFormat
	}

	if err := config.Validate(conf); err != nil {
		return err
	}

	c.conf = conf
	return nil
}

func (c *cli) close() {
	if c.logFile != nil {
		c.logFile.Close()
		c.logFile = nil
	}
}

// newLogger writes to the configured log file, or to fallback when none is
// set.
func (c *cli) newLogger(fallback io.Writer) (logger.Log, error) {
	out := fallback
	if c.conf.Log.File != "" {
		f, err := c.fs.OpenFile(c.conf.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open log file %s", c.conf.Log.File)
		}
		c.logFile = f
		out = f
	}

	return logger.New(logger.Config{
		Level:  c.conf.Log.Level,
		Format: c.conf.Log.Format,
		Output: out,
	})
}

func (c *cli) newConverter(overwrite bool, reporter converter.Reporter, log logger.Log) (*converter.Converter, error) {
	table := converter.DefaultConversionTable(converter.CodecOptions{
		TypedCells: c.conf.Conversion.TypedCells,
	})

	return converter.New(
		c.fs,
		table,
		converter.Options{Overwrite: overwrite || c.conf.Conversion.Overwrite},
		reporter,
		log,
	)
}

func printf(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, format, a...)
}

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"ctxbundle/pkg/bundle"
	"ctxbundle/pkg/logging"
	"ctxbundle/pkg/version"
)

// EnvPrefix prefixes the environment variables that mirror each flag,
// e.g. CTXBUNDLE_OUTPUT or CTXBUNDLE_MAX_SIZE_KB.
const EnvPrefix = "CTXBUNDLE"

// loggerFactory builds the logger once flags are parsed.
type loggerFactory func(debug bool) (*zap.Logger, error)

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns the ctxbundle command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(func(debug bool) (*zap.Logger, error) {
		return logging.Setup(debug, "ctxbundle", version.Get().Version)
	})
}

func newRootCmd(newLogger loggerFactory) *cobra.Command {
	v := viper.New()
	var (
		cfgFile string
		logger  *zap.Logger
	)

	rootCmd := &cobra.Command{
		Use:   "ctxbundle [flags] <directory>",
		Short: "Bundle a project directory into a single annotated context file",
		Long: `ctxbundle walks a project directory, skips ignored, excluded and binary files,
optionally minifies what remains and writes everything into one document with
a structure listing and one fenced block per file, ready to hand to a
language model.

Flags can also be set in a YAML config file (--config) or through
CTXBUNDLE_* environment variables.`,
		Args:         bundleArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(v, cfgFile); err != nil {
				return err
			}
			var err error
			logger, err = newLogger(v.GetBool("debug"))
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBundle(cmd, args[0], args[1:], v, logger)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync(logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "YAML config file")
	flags.Bool("debug", false, "enable debug logging")

	local := rootCmd.Flags()
	local.StringP("output", "o", bundle.DefaultOutput, "output file path")
	local.StringSliceP("exclude", "e", nil, "additional substring patterns to exclude; takes a comma list and any arguments after the directory")
	local.BoolP("minify", "m", false, "enable minification of file contents")
	local.Bool("strict", false, "skip files whose minification fails instead of bundling them unminified")
	local.String("global-ignore", "", "extra gitignore-syntax file applied before the project's .gitignore")
	local.Int("max-size-kb", 0, "skip files larger than this many KB (0 disables the limit)")

	_ = v.BindPFlags(flags)
	_ = v.BindPFlags(local)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// bundleArgs accepts the directory plus, once --exclude is given, further
// positional patterns so that "dir -e a b" excludes both a and b.
func bundleArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 1 && cmd.Flags().Changed("exclude") {
		return nil
	}
	return cobra.ExactArgs(1)(cmd, args)
}

// loadConfig reads the config file when one is given.
func loadConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"ctxbundle/pkg/bundle"
)

// runBundle resolves the bundle arguments from flags, environment and config
// file, then runs the bundle. Returned errors are printed by cobra.
func runBundle(cmd *cobra.Command, directory string, extraExcludes []string, v *viper.Viper, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	labelBase, err := os.Getwd()
	if err != nil {
		logger.Warn("Unable to determine working directory, labelling paths relative to the project root", zap.Error(err))
		labelBase = ""
	}

	args := &bundle.Arguments{
		Directory:       directory,
		Output:          v.GetString("output"),
		LabelBase:       labelBase,
		ExcludePatterns: excludePatterns(v.GetStringSlice("exclude"), extraExcludes),
		Minify:          v.GetBool("minify"),
		Strict:          v.GetBool("strict"),
		GlobalIgnore:    v.GetString("global-ignore"),
		MaxFileSizeKB:   v.GetInt("max-size-kb"),
	}

	res, err := bundle.Run(args, logger)
	if errors.Is(err, bundle.ErrInvalidDirectory) {
		return fmt.Errorf("%s is %w", directory, bundle.ErrInvalidDirectory)
	}
	if err != nil {
		logger.Error("Bundle failed", zap.Error(err))
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully generated context file at %s\n", res.Output)
	return nil
}

// excludePatterns merges the configured patterns with the extra positional
// ones. Environment and config values may hold comma-separated lists.
func excludePatterns(configured, extra []string) []string {
	patterns := lo.FlatMap(configured, func(p string, _ int) []string {
		return strings.Split(p, ",")
	})
	patterns = append(patterns, extra...)
	return lo.Map(patterns, func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
}

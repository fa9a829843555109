// Package commands implements the libslice command line: inspecting the settings a slice job resolves to and
// generating reference documentation from setting definitions.
package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ekristen/libslice/pkg/config"
	liblog "github.com/ekristen/libslice/pkg/log"
)

type rootOptions struct {
	configPath   string
	logLevel     string
	featureFlags string
}

// NewRootCommand creates the libslice command with all sub commands attached
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "libslice",
		Short: "Inspect the settings of a slice job",
		Long: `libslice resolves the settings of a slice job the way the slicing engine sees them.

A slice job is a YAML file with global settings, per extruder settings and per mesh
settings. Every extruder inherits from the global settings and every mesh inherits
from the extruder it is printed with.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to the slice job configuration")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warning", "Log level for setting diagnostics")
	cmd.PersistentFlags().StringVar(&opts.featureFlags, "feature-flags", "",
		"Comma separated feature flags, prefix with - to disable")

	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewDocsCommand(opts))
	cmd.AddCommand(NewTempCommand(opts))

	return cmd
}

// logger creates the logger diagnostics of a command are written to, on the command's error output
func (o *rootOptions) logger(cmd *cobra.Command) (*logrus.Entry, error) {
	level, err := logrus.ParseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(level)
	logger.SetFormatter(&liblog.CustomFormatter{})

	return logger.WithField("component", cmd.Name()), nil
}

// load reads and builds the configuration given with --config
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	if o.configPath == "" {
		return nil, fmt.Errorf("no configuration given, use --config")
	}

	log, err := o.logger(cmd)
	if err != nil {
		return nil, err
	}

	c, err := config.New(config.Options{
		Path:         o.configPath,
		Log:          log,
		FeatureFlags: o.featureFlags,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to load %s: %w", o.configPath, err)
	}

	return c, nil
}

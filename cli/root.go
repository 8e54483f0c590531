// Package cli wires the veracity commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/maastricht-university/veracity-pipeline/config"
	"github.com/maastricht-university/veracity-pipeline/history"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var version = "v0.1.0-dev"

type app struct {
	v          *viper.Viper
	cfg        *config.Root
	log        *logrus.Logger
	configPath string
	format     string
}

// NewRootCmd builds the command tree. Output goes to the command's out
// writer; logs go to stderr.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logrus.StandardLogger()}

	root := &cobra.Command{
		Use:           "veracity",
		Short:         "Classify a short webcam recording as Lie or Truth from face, posture and voice",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "path to config.yaml (default: config/$CONFIG_ENV/config.yaml)")
	f.String("log-level", "", "log level [debug, info, warn, error]")
	f.StringVar(&a.format, "format", formatJSON, "output format [json, yaml]")
	_ = a.v.BindPFlag("pipeline.log_level", f.Lookup("log-level"))

	root.AddCommand(
		a.runCmd(),
		a.predictCmd(),
		a.describeCmd(),
		a.serveCmd(),
		a.historyCmd(),
		a.configCmd(),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("fatal error")
		return 1
	}
	return 0
}

func (a *app) init() error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	initLogging(a.log, cfg.Pipeline.LogLvl)

	switch strings.ToLower(a.format) {
	case formatJSON:
	case formatYAML, "yml":
		a.format = formatYAML
	default:
		return fmt.Errorf("unsupported format %q", a.format)
	}
	return nil
}

func initLogging(log *logrus.Logger, level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	if os.Getenv("GO_ENV") == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func (a *app) print(w io.Writer, v any) error {
	if a.format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// openHistory returns nil when history is disabled.
func (a *app) openHistory(ctx context.Context) (*history.Store, error) {
	d := a.cfg.History.Driver
	if d == "" || d == "none" {
		return nil, nil
	}
	s, err := history.Open(ctx, history.Driver(d), a.cfg.History.DSN)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return s, nil
}

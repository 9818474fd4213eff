// Package main provides the resume_fit command line: one-shot skill analysis,
// single-document skill and sentiment extraction, schema validation and the
// HTTP API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonathan/resume-fit/internal/config"
	"github.com/jonathan/resume-fit/internal/logger"
	"github.com/jonathan/resume-fit/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries state shared by every subcommand.
type app struct {
	v         *viper.Viper
	cfgFile   string
	newClient pipeline.ClientFactory
	log       *zap.Logger
}

// newRootCmd builds the command tree. Each call returns an independent tree.
func newRootCmd() *cobra.Command {
	a := &app{
		v:         config.New(),
		newClient: pipeline.DefaultClientFactory,
		log:       zap.NewNop(),
	}

	rootCmd := &cobra.Command{
		Use:           "resume_fit",
		Short:         "Resume to job posting skill matching",
		Long:          "resume_fit extracts skills from a resume and a job posting, matches them semantically and reports a compatibility score.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Path to a YAML or JSON config file")
	flags.Bool("log-json", false, "Emit JSON logs")
	flags.Bool("debug", false, "Enable debug logging")
	_ = a.v.BindPFlag("log.json", flags.Lookup("log-json"))
	_ = a.v.BindPFlag("log.debug", flags.Lookup("debug"))

	rootCmd.AddCommand(
		newAnalyzeCmd(a),
		newExtractSkillsCmd(a),
		newSentimentCmd(a),
		newValidateCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

// loadConfig binds the command's flags to config keys, then reads the layered
// configuration and builds the logger from it.
func (a *app) loadConfig(cmd *cobra.Command, bindings map[string]string) (*config.Config, error) {
	for key, name := range bindings {
		if err := a.bindFlag(cmd.Flags(), key, name); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	a.log = log
	return cfg, nil
}

func (a *app) bindFlag(flags *pflag.FlagSet, key, name string) error {
	flag := flags.Lookup(name)
	if flag == nil {
		return fmt.Errorf("unknown flag --%s", name)
	}
	return a.v.BindPFlag(key, flag)
}

// buildAnalyzer loads the configuration and assembles the analyzer. The
// returned closer is never nil.
func (a *app) buildAnalyzer(cmd *cobra.Command, bindings map[string]string) (*pipeline.Analyzer, *config.Config, func(), error) {
	cfg, err := a.loadConfig(cmd, bindings)
	if err != nil {
		return nil, nil, func() {}, err
	}

	analyzer, closeClient, err := pipeline.Build(cmd.Context(), cfg, a.newClient, a.log)
	if err != nil {
		return nil, nil, func() {}, err
	}

	cleanup := func() {
		if err := closeClient(); err != nil {
			a.log.Warn("failed to close LLM client", zap.Error(err))
		}
		_ = a.log.Sync()
	}
	return analyzer, cfg, cleanup, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rushteam/filmrec/catalog"
	"github.com/rushteam/filmrec/config"
	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/pkg/logging"
	"github.com/rushteam/filmrec/rating"
	"github.com/rushteam/filmrec/recommender"
)

var (
	cfgFile  string
	logLevel string
	jsonOut  bool

	appCfg *config.AppConfig
	kv     core.Store
	svc    *recommender.Service
)

var rootCmd = &cobra.Command{
	Use:   "filmrec",
	Short: "Content-based movie recommendations",
	Long: `filmrec recommends movies from a catalog using the titles you liked and
disliked. Movies are encoded into a weighted feature space (TF-IDF over cast,
crew and country plus standardized numeric attributes) and the nearest
neighbours of your taste profile are returned.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default $FILMREC_CONFIG or ./filmrec.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")
}

func setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == versionCmd.Name() {
		return nil
	}
	if err := teardown(cmd, nil); err != nil {
		return err
	}

	cfg, err := config.LoadAppConfig(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cmd.ErrOrStderr()})

	stages, err := cfg.Stages()
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}
	store, err := cfg.OpenStore(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("opening rating store: %w", err)
	}
	s, err := recommender.New(
		catalog.NewHolder(cfg.CatalogLoader()),
		recommender.WithStages(stages),
		recommender.WithRatings(rating.NewStore(store, cfg.Store.KeyPrefix)),
		recommender.WithConcurrency(cfg.Recommend.Concurrency),
	)
	if err != nil {
		store.Close()
		return err
	}

	appCfg, kv, svc = cfg, store, s
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if kv == nil {
		return nil
	}
	err := kv.Close()
	kv = nil
	return err
}

// commandContext 在测试中 cmd.Context() 可能为空
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/errdoctor/internal/cache"
	"github.com/abhisek/errdoctor/internal/diagnosis"
	"github.com/abhisek/errdoctor/internal/engine"
	"github.com/abhisek/errdoctor/internal/kb"
	"github.com/abhisek/errdoctor/internal/llm"
	"github.com/abhisek/errdoctor/internal/profile"
	"github.com/abhisek/errdoctor/internal/store"
	"github.com/abhisek/errdoctor/internal/validate"
)

var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "errdoctor",
	Short: "Diagnose programming errors from plain descriptions",
	Long: "errdoctor turns a free-text description of a programming error into a ranked,\n" +
		"explainable diagnosis with solutions tailored to your OS, package manager, and\n" +
		"editor. It answers from a local knowledge base and cache first, and only asks\n" +
		"an AI provider when it has to.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ERRDOCTOR_DB)")
	rootCmd.PersistentFlags().String("kb", "", "Path to a knowledge base JSON file (overrides ERRDOCTOR_KB; built-in templates when unset)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(kbCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path: --db flag first, then
// ERRDOCTOR_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadCollection picks the knowledge base: --kb flag, then ERRDOCTOR_KB,
// then the built-in seed templates.
func loadCollection(cmd *cobra.Command) *kb.Collection {
	path, _ := cmd.Flags().GetString("kb")
	if path == "" {
		path = os.Getenv("ERRDOCTOR_KB")
	}
	if path == "" {
		return kb.Seed()
	}
	return kb.Load(path, logger)
}

// loadProfile builds the effective caller profile: defaults, overlaid by
// the saved profile, overlaid by any flags set on cmd.
func loadProfile(ctx context.Context, cmd *cobra.Command, repo store.ProfileRepo) profile.Profile {
	p := profile.Default()

	saved, err := repo.Load(ctx)
	if err != nil {
		logger.Warn("saved profile unavailable", zap.Error(err))
	} else if saved != nil {
		p = p.With(saved.OS, saved.PM, saved.Editor)
	}

	osFlag, _ := cmd.Flags().GetString("os")
	pmFlag, _ := cmd.Flags().GetString("pm")
	editorFlag, _ := cmd.Flags().GetString("editor")
	if osFlag != "" || pmFlag != "" || editorFlag != "" {
		p = p.With(osFlag, pmFlag, editorFlag)
	}
	return p
}

// buildProviders assembles the AI provider chain. ERRDOCTOR_LLM_PROVIDER
// pins one provider; otherwise every provider with a standard API key in
// the environment joins the chain. An empty chain is fine: resolution
// then stops at the knowledge base and cache.
func buildProviders(ctx context.Context) []llm.Provider {
	if os.Getenv("ERRDOCTOR_LLM_PROVIDER") != "" {
		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			logger.Warn("configured provider unusable", zap.Error(err))
			return nil
		}
		p, err := llm.NewProvider(ctx, cfg, logger)
		if err != nil {
			logger.Warn("configured provider unusable", zap.Error(err))
			return nil
		}
		return []llm.Provider{p}
	}

	var providers []llm.Provider
	for _, cfg := range llm.DiscoverConfigs() {
		p, err := llm.NewProvider(ctx, cfg, logger)
		if err != nil {
			logger.Warn("discovered provider unusable",
				zap.String("provider", cfg.Provider), zap.Error(err))
			continue
		}
		providers = append(providers, p)
	}
	return providers
}

// buildEngine wires the full resolution chain over an open store.
func buildEngine(ctx context.Context, cmd *cobra.Command, s *store.Store) *engine.Engine {
	c := cache.New(s.CacheRepo(), cache.DefaultConfig(), logger)
	matcher := kb.NewMatcher(loadCollection(cmd), kb.DefaultMatcherConfig(), logger)
	gen := diagnosis.NewGenerator(buildProviders(ctx), diagnosis.DefaultGeneratorConfig(), logger)

	strategies := []engine.Strategy{
		engine.NewKBStrategy(matcher, engine.ConfigFromEnv().KBThreshold, logger),
		engine.NewCacheStrategy(c),
		engine.NewAIStrategy(gen, c),
	}
	return engine.New(validate.New(), strategies, s.HistoryRepo(), logger)
}

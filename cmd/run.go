package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/speakflow/internal/app"
	"github.com/abhisek/speakflow/internal/controller"
	"github.com/abhisek/speakflow/internal/llm"
	"github.com/abhisek/speakflow/internal/progress"
	"github.com/abhisek/speakflow/internal/scoring"
	"github.com/abhisek/speakflow/internal/speech"
	"github.com/abhisek/speakflow/internal/tutor"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	log, err := openLogger(cmd)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer log.Sync()

	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	state, err := progress.Open(ctx, progress.NewSnapshotPersister(st.SnapshotRepo()), catalog.Units(), log)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	deps := app.Deps{
		Controller: controller.New(state, eventRepo, log),
		Evaluator:  scoring.OfflineEvaluator{},
		Replier:    tutor.OfflineReplier{},
		Events:     eventRepo,
		Log:        log,
	}

	provider, cfg, err := llm.NewProviderFromEnv(ctx, eventRepo, log)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		fmt.Fprintln(os.Stderr, "LLM provider not configured; using offline scoring and scripted replies.")
		log.Info("llm not configured", "err", err)
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider unavailable:", err)
		log.Warn("llm init failed", "provider", cfg.Provider, "err", err)
	default:
		deps.Evaluator = scoring.NewLLMEvaluator(provider, scoring.DefaultConfig())
		deps.Replier = tutor.NewLLMReplier(provider, tutor.ConfigFromEnv())
		log.Info("llm configured", "provider", cfg.Provider)
	}
	deps.Evaluator = scoring.WithFallback(deps.Evaluator, log)

	svc, err := speech.New(ctx, speech.ConfigFromEnv(), log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Speech disabled:", err)
		log.Warn("speech init failed", "err", err)
		svc = speech.Disabled()
	}
	defer svc.Close()
	deps.Speech = svc

	return app.Run(deps)
}

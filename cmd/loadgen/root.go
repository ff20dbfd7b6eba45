package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	platformlogging "github.com/shestoi/GoShopSim/platform/logging"
)

var (
	gatewayURL        string
	sessionsPerMinute int
	runDuration       time.Duration
	seed              int64
)

var rootCmd = &cobra.Command{
	Use:   "loadgen",
	Short: "Shopper traffic generator for the GoShopSim storefront",
	Long: "loadgen replays realistic shopper sessions against the API gateway:\n" +
		"landing, browse, search, login, account, checkout and a bit of idle\n" +
		"exploration at the end. Failed requests are counted, never retried.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sessionsPerMinute <= 0 {
			return fmt.Errorf("sessions-per-minute must be positive, got %d", sessionsPerMinute)
		}

		logger, err := platformlogging.New(platformlogging.Config{
			ServiceName: "loadgen",
			Env:         "local",
			Level:       "info",
			Format:      "console",
			AddCaller:   true,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer platformlogging.Sync(logger)

		// seed=0 означает невоспроизводимый прогон; фактическое зерно
		// попадает в лог, чтобы прогон можно было повторить
		effectiveSeed := seed
		if effectiveSeed == 0 {
			effectiveSeed = time.Now().UnixNano()
		}

		baseCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigs
			logger.Info("Shutdown signal received, draining sessions")
			cancel()
		}()

		ctx := baseCtx
		if runDuration > 0 {
			var timeoutCancel context.CancelFunc
			ctx, timeoutCancel = context.WithTimeout(baseCtx, runDuration)
			defer timeoutCancel()
		}

		logger.Info("Load generation started",
			zap.String("gateway", gatewayURL),
			zap.Int("sessions_per_minute", sessionsPerMinute),
			zap.Duration("duration", runDuration),
			zap.Int64("seed", effectiveSeed),
		)

		generator := NewGenerator(gatewayURL, sessionsPerMinute, effectiveSeed, logger)
		generator.Run(ctx)

		generator.Report().Print(os.Stdout)
		return nil
	},
}

// Execute запускает корневую команду loadgen
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&gatewayURL, "gateway", "http://localhost:5000", "Base URL of the API gateway")
	rootCmd.Flags().IntVar(&sessionsPerMinute, "sessions-per-minute", 2, "How many shopper sessions to start per minute")
	rootCmd.Flags().DurationVar(&runDuration, "duration", 0, "How long to generate traffic (0 means until interrupted)")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for reproducible runs (0 picks a time-based seed)")
}

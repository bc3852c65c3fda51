// Command bookswap-admin inspects and resets the stored marketplace snapshot.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bookswap/internal/blob"
	"bookswap/internal/cache"
	"bookswap/internal/config"
	"bookswap/internal/logging"
	"bookswap/internal/store"
)

var (
	timeout      time.Duration
	exportFormat string
)

var rootCmd = &cobra.Command{
	Use:   "bookswap-admin",
	Short: "Administer the bookswap snapshot store",
	Long: `Administer the bookswap snapshot store.

The backend and key are taken from the same environment as the server
(STORE_BACKEND, STORE_KEY, REDIS_ADDR, MYSQL_DSN, ...).`,
	SilenceUsage: true,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the stored snapshot with the seed dataset",
	RunE:  runReset,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the stored snapshot as JSON or YAML",
	RunE:  runExport,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print entity counts of the stored snapshot",
	RunE:  runStats,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or yaml")

	rootCmd.AddCommand(resetCmd, exportCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore connects to the configured backend. Commands that read the snapshot pass load; reset only
// writes, so it skips reading. The returned closer releases backend connections.
func openStore(ctx context.Context, load bool) (*store.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		return nil, nil, err
	}

	redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	closer := func() {
		_ = redisClient.Close()
		_ = logger.Sync()
	}

	blobs, err := blob.Open(cfg, redisClient)
	if err != nil {
		closer()
		return nil, nil, err
	}
	st, err := newStore(ctx, blobs, cfg, logger, load)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return st, closer, nil
}

func newStore(ctx context.Context, blobs blob.Store, cfg *config.Config, logger *zap.Logger, load bool) (*store.Store, error) {
	st := store.New(blobs, cfg.StoreKey, store.WithLogger(logger.With(zap.String("backend", cfg.StoreBackend))))
	if !load {
		return st, nil
	}
	if err := st.Load(ctx); err != nil {
		return nil, err
	}
	return st, nil
}

func withStore(cmd *cobra.Command, load bool, fn func(ctx context.Context, st *store.Store) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	st, closer, err := openStore(ctx, load)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closer()
	return fn(ctx, st)
}

func runReset(cmd *cobra.Command, args []string) error {
	return withStore(cmd, false, func(ctx context.Context, st *store.Store) error {
		if err := st.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "snapshot reset to seed data")
		return nil
	})
}

func runExport(cmd *cobra.Command, args []string) error {
	return withStore(cmd, true, func(ctx context.Context, st *store.Store) error {
		return export(cmd.OutOrStdout(), st.Snapshot(), exportFormat)
	})
}

func runStats(cmd *cobra.Command, args []string) error {
	return withStore(cmd, true, func(ctx context.Context, st *store.Store) error {
		printStats(cmd.OutOrStdout(), st.Snapshot())
		return nil
	})
}

package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/PhucNguyen204/proteofilter/internal/server"
	"github.com/PhucNguyen204/proteofilter/internal/store"
	"github.com/PhucNguyen204/proteofilter/pkg/catalog"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the filtering HTTP API",
	Long: `Serve exposes the descriptor catalog and filter evaluation over HTTP.
With a Postgres DSN configured, every persisted run can be listed and
re-inspected through /api/v1/runs.

All flags can also be set through PROTEOFILTER_* environment variables,
for example PROTEOFILTER_ADDR or PROTEOFILTER_DSN.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("dsn", "", "Postgres DSN, empty = run without persistence")
	serveCmd.Flags().Float64("rate", 50, "filter requests per second")
	serveCmd.Flags().Int("burst", 25, "rate limiter burst")
	serveCmd.Flags().Duration("cache-ttl", 5*time.Minute, "compiled filter set cache TTL")
	serveCmd.Flags().String("migrations", "", "directory with extra .sql migrations")

	for _, name := range []string{"addr", "dsn", "rate", "burst", "cache-ttl", "migrations"} {
		_ = viper.BindPFlag(name, serveCmd.Flags().Lookup(name))
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := viper.GetString("addr")
	dsn := viper.GetString("dsn")

	var st *store.Store
	if dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
		if err := db.Ping(); err != nil {
			return fmt.Errorf("ping db: %w", err)
		}
		st = store.New(db)
		if err := st.InitSchema(context.Background()); err != nil {
			return err
		}
		if dir := viper.GetString("migrations"); dir != "" {
			if err := st.RunMigrations(context.Background(), dir); err != nil {
				return err
			}
		}
	}

	srv := server.New(server.Config{
		Registry:  catalog.Default(),
		Store:     st,
		CacheTTL:  viper.GetDuration("cache-ttl"),
		RateLimit: rate.Limit(viper.GetFloat64("rate")),
		Burst:     viper.GetInt("burst"),
	})
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	log.Printf("proteofilter listening on %s (persistence: %v)", addr, st != nil)
	if err := http.ListenAndServe(addr, mux); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

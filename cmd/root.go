package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ates/study/internal/app"
	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/progress"
	"github.com/ates/study/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "study",
	Short: "Adaptive study coach for 7th-grade Turkish",
	Long:  "Study is a terminal study coach that plans practice sessions around your weak topics and schedules flashcard reviews.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		return app.Run(env.options())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDY_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to an external catalog JSON file")

	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// env bundles the services every command needs.
type env struct {
	catalog  *content.Catalog
	blob     store.Blob
	progress *progress.Service
}

func (e *env) options() app.Options {
	return app.Options{
		Catalog:  e.catalog,
		Progress: e.progress,
	}
}

// buildEnv resolves the catalog and storage for a command. A database
// that cannot be opened degrades to an in-memory store so every command
// still works; nothing is durably saved in that mode.
func buildEnv(cmd *cobra.Command) (*env, func(), error) {
	catalog, err := resolveCatalog(cmd)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var blob store.Blob

	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		var st *store.Store
		st, err = store.Open(dbPath)
		if err == nil {
			blob = st
			cleanup = func() { st.Close() }
		}
	}
	if err != nil {
		slog.Warn("storage unavailable, progress will not be saved", "error", err)
		blob = store.NewMemory()
	}

	return &env{
		catalog:  catalog,
		blob:     blob,
		progress: progress.NewService(catalog, blob),
	}, cleanup, nil
}

// resolveCatalog loads the external catalog named by --catalog, falling
// back to the embedded one.
func resolveCatalog(cmd *cobra.Command) (*content.Catalog, error) {
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		c, err := content.LoadFile(p)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		return c, nil
	}
	return content.Default(), nil
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then STUDY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

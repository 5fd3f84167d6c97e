package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/TWRT/todolist/internal/api"
	"github.com/TWRT/todolist/internal/repository"
)

func newServeCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				e.cfg.Server.Addr = addr
			}
			if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
				e.cfg.Server.DBPath = dbPath
			}
			return serve(cmd.Context(), e)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides TODOLIST_ADDR)")
	cmd.Flags().String("db", "", "SQLite database path (overrides TODOLIST_DB)")
	return cmd
}

func serve(ctx context.Context, e *env) error {
	db, err := repository.InitDB(e.cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("Error trying to initialize the database: %w", err)
	}
	defer db.Close()

	fmt.Println("✅ Database ready:", e.cfg.Server.DBPath)

	srv := &http.Server{
		Addr:              e.cfg.Server.Addr,
		Handler:           api.SetupRouter(db),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("🚀 Server running on %s\n", e.cfg.Server.Addr)
	fmt.Println("📝 Endpoints:")
	fmt.Printf("   POST   %s/Task/       - create a task\n", api.BasePath)
	fmt.Printf("   GET    %s/Task/       - list tasks (?search=&completed=)\n", api.BasePath)
	fmt.Printf("   GET    %s/Task/{id}/  - get a task\n", api.BasePath)
	fmt.Printf("   PUT    %s/Task/{id}/  - replace a task\n", api.BasePath)
	fmt.Printf("   PATCH  %s/Task/{id}/  - update some fields\n", api.BasePath)
	fmt.Printf("   DELETE %s/Task/{id}/  - delete a task\n", api.BasePath)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("Error trying to start the server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

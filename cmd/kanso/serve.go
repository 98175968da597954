package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	adapterHTTP "github.com/comitanigiacomo/kanso-lifesync/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/services"
)

func newServeCmd() *cobra.Command {
	var release bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load every collection and serve the local API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if release {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := services.ReloadErrors(a.store.ReloadAll(ctx)); err != nil {
				log.Printf("Initial reload incomplete: %v", err)
			}

			srv := &http.Server{
				Addr:         ":" + a.cfg.Port,
				Handler:      adapterHTTP.NewRouter(a.routerDeps()),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Printf("Kanso LifeSync running on http://localhost:%s", a.cfg.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			case <-ctx.Done():
				log.Println("Stop signal received. Shutting down...")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			log.Println("Server stopped gracefully.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&release, "release", false, "run gin in release mode")
	return cmd
}

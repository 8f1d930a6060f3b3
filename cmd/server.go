package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cscan/api"
	"cscan/config"
	"cscan/logger"

	"github.com/spf13/cobra"
)

var serverPort string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the stored comments over an HTTP API",
	Long: `Starts the HTTP API server. All routes live under /api, e.g.
GET /api/comments and POST /api/scan.
Press Ctrl+C to gracefully shut down.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info("--- Server Command: Run ---")

		actualPort := serverPort
		if !cmd.Flags().Changed("port") {
			actualPort = config.AppConfig.Server.Port
			logger.Info("Server Command: Port flag not set, using config value: %s", actualPort)
		}
		if actualPort == "" {
			logger.Error("Server Command: Port is empty after checking flag and config, defaulting to 8780")
			actualPort = "8780"
		}

		apiRouter := api.NewRouter()
		mainMux := http.NewServeMux()
		mainMux.Handle("/api/", http.StripPrefix("/api", apiRouter))

		server := &http.Server{
			Addr:    ":" + actualPort,
			Handler: mainMux,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("Server Command: Listening on :%s", actualPort)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
				return
			}
			errCh <- nil
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			logger.Info("Server Command: Received signal %v, shutting down...", sig)
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("Server Command: Graceful shutdown failed: %v", err)
			} else {
				logger.Info("Server Command: Gracefully stopped.")
			}
			<-errCh
		case err := <-errCh:
			if err != nil {
				logger.Fatal("Server Command: ListenAndServe error: %v", err)
			}
		}

		logger.Info("Server Command: Finished.")
	},
}

func init() {
	serverCmd.Flags().StringVarP(&serverPort, "port", "p", "8780", "port for the HTTP API server")
	rootCmd.AddCommand(serverCmd)
}

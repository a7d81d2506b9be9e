package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"monopoly/communication"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over HTTP and websocket",
	Long: `Starts an HTTP server exposing the session intents under /api and
pushing every new snapshot to websocket clients on /ws. A saved session is
resumed on startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		master, release, err := newMaster(ctx)
		if err != nil {
			return err
		}
		defer release()

		if gs, ok := master.Resume(ctx); ok {
			log.Info().Str("game", gs.ID).Msg("resumed saved session")
		}

		if zerolog.GlobalLevel() > zerolog.DebugLevel {
			gin.SetMode(gin.ReleaseMode)
		}
		srv := &http.Server{
			Addr:              viper.GetString("addr"),
			Handler:           communication.NewServer(master).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", srv.Addr).Msg("listening")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down")
		// Closing the master ends the websocket streams, which Shutdown does not wait for.
		master.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	cobra.CheckErr(viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr")))
	rootCmd.AddCommand(serveCmd)
}

package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/codegenome/internal/auth"
	"github.com/abhisek/codegenome/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API used by the web front end",
	Long: `Serve the CodeGenome HTTP API over the same database the terminal UI uses.

A signing secret for session tokens is required; set CODEGENOME_SERVER_JWT_SECRET
or server.jwt_secret in the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, depsOptions{withAI: true})
		if err != nil {
			return err
		}
		defer d.Close()

		sc := d.cfg.Server
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			sc.Addr = addr
		}
		if sc.JWTSecret == "" {
			return errors.New("server.jwt_secret is not set; refusing to issue unsigned sessions")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(d.coach, auth.NewTokens(sc.JWTSecret, sc.TokenTTL), server.Options{
			Addr:           sc.Addr,
			AllowedOrigins: sc.AllowedOrigins,
		})
		logrus.WithFields(logrus.Fields{
			"addr": sc.Addr,
			"ai":   d.coach.AIEnabled(),
		}).Info("serving API")

		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logrus.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}

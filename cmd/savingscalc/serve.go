package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, "serve")
			if err != nil {
				return err
			}
			defer a.close()

			settings := a.settings.Server
			if addr, _ := cmd.Flags().GetString("address"); addr != "" {
				settings.Address = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(settings, a.service, a.logger).ListenAndServe(ctx)
		},
	}
	cmd.Flags().String("address", "", "Listen address (default: server.address setting)")
	return cmd
}

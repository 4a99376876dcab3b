package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-voicings/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		fmt.Println("listening on", addr)
		return api.NewServer(cfg.Server.AllowedOrigins).ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

package main

import (
	"os"

	"github.com/bastiangx/tagserve/internal/logger"
	"github.com/bastiangx/tagserve/pkg/control"
	"github.com/bastiangx/tagserve/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var serveLimit int

func init() {
	serveCmd.Flags().IntVar(&serveLimit, "limit", 0, "Max suggestions per response (default from config)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a tag input over stdin/stdout",
	Long: `Read MessagePack requests from stdin and write responses and pushed
surface events to stdout. A ready frame is sent first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			log.Warn("stdin is a terminal, serve expects msgpack requests; try the prompt command")
		}
		s, err := loadSession()
		if err != nil {
			return err
		}
		limit := s.cfg.Server.MaxLimit
		if serveLimit > 0 {
			limit = serveLimit
		}

		srv, err := server.NewServer(s.settings, s.pool, server.Options{
			MaxLimit: limit,
			Control:  []control.Option{control.WithLogger(logger.New("control"))},
		})
		if err != nil {
			return err
		}
		defer srv.Close()
		return srv.Start()
	},
}

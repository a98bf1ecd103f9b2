package main

import (
	"errors"
	"os"

	"github.com/bastiangx/tagserve/internal/cli"
	"github.com/bastiangx/tagserve/internal/logger"
	"github.com/bastiangx/tagserve/pkg/control"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var pageSize int

func init() {
	promptCmd.Flags().IntVar(&pageSize, "page-size", 0, "Rows shown by pickers (default from config)")
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Run the tag input in the terminal",
	Long: `Type to see suggestions, Tab to complete and Enter to add a tag.
Enter on text matching several options opens a picker.
":rm" removes a tag, ":tags" lists them and ":q" quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("prompt needs an interactive terminal, use serve for piped input")
		}
		s, err := loadSession()
		if err != nil {
			return err
		}
		rows := s.cfg.CLI.PageSize
		if pageSize > 0 {
			rows = pageSize
		}

		out := cli.NewTerminal(os.Stdout)
		ctrl, err := control.New(s.settings, s.pool, out, control.WithLogger(logger.New("control")))
		if err != nil {
			return err
		}
		defer ctrl.Close()

		h := cli.NewInputHandler(ctrl, out, cli.NewSurveyPrompter(), rows, logger.New("prompt"))
		return h.Start()
	},
}

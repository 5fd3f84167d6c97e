package cli

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/TWRT/todolist/internal/form"
	"github.com/TWRT/todolist/internal/tui"
)

var errNoTerminal = errors.New("the ui needs an interactive terminal; use ls, add, done or rm instead")

func newUICmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
				return errNoTerminal
			}
			route, _ := cmd.Flags().GetString("route")

			closeLog, err := redirectLog(e.cfg.UI.LogFile)
			if err != nil {
				return err
			}
			defer closeLog()

			return tui.Run(cmd.Context(), e.cfg.UI, e.client(), route)
		},
	}
	cmd.Flags().String("route", form.ListRoute, `Screen to open: "/" or "/Task/{id}"`)
	return cmd
}

// redirectLog keeps log output off the screen the UI draws on.
func redirectLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

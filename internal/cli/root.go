package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TWRT/todolist/internal/client/todo"
	"github.com/TWRT/todolist/internal/config"
)

// env is what every command needs once the config is loaded.
type env struct {
	cfg *config.Config
}

func (e *env) client() *todo.Client {
	return todo.NewClient(e.cfg.API.BaseURL, e.cfg.API.Timeout)
}

func newRootCmd(version string) *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:   "todolist",
		Short: "ToDo List - tasks with search-as-you-type",
		Long: `todolist manages a to-do list kept by a REST task server.

Run without a command to open the terminal UI, or use "serve" to start the server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			return nil
		},
	}

	uiCmd := newUICmd(e)
	rootCmd.RunE = uiCmd.RunE
	rootCmd.Flags().AddFlagSet(uiCmd.Flags())

	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(newServeCmd(e))
	rootCmd.AddCommand(newListCmd(e))
	rootCmd.AddCommand(newAddCmd(e))
	rootCmd.AddCommand(newDoneCmd(e))
	rootCmd.AddCommand(newRemoveCmd(e))
	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	if err := newRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

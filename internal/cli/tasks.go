package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/TWRT/todolist/internal/client/todo"
	"github.com/TWRT/todolist/internal/form"
	"github.com/TWRT/todolist/internal/models"
	"github.com/TWRT/todolist/internal/notify"
	"github.com/TWRT/todolist/internal/search"
	"github.com/TWRT/todolist/internal/tasklist"
)

var doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)

// printNotifier writes toasts as plain lines.
func printNotifier(w io.Writer) notify.Notifier {
	return notify.Func(func(t notify.Toast) {
		mark := "✓"
		if t.Kind == notify.KindError {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s\n", mark, t.Message)
	})
}

func newListCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls [search]",
		Aliases: []string{"list"},
		Short:   "List tasks, optionally filtered",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := todo.ListOptions{}
			if len(args) == 1 {
				opts.Search = args[0]
			}
			if raw, _ := cmd.Flags().GetString("completed"); raw != "" {
				v, err := strconv.ParseBool(raw)
				if err != nil {
					return fmt.Errorf("invalid --completed value %q", raw)
				}
				opts.Completed = &v
			}

			tasks, err := e.client().List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			styled := isatty.IsTerminal(os.Stdout.Fd())
			printTasks(cmd.OutOrStdout(), tasks, styled, time.Now())
			return nil
		},
	}
	cmd.Flags().String("completed", "", "Only tasks with this completed flag (true|false)")
	return cmd
}

func printTasks(w io.Writer, tasks []models.Task, styled bool, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks available")
		return
	}

	fmt.Fprintf(w, "You have %d tasks left to do\n\n", tasklist.PendingCount(tasks))
	for _, t := range tasks {
		check := "[ ]"
		desc := t.Description
		if t.Completed {
			check = "[x]"
			if styled {
				desc = doneStyle.Render(desc)
			}
		}
		age := ""
		if !t.CreatedAt.IsZero() {
			age = "  (" + humanize.RelTime(t.CreatedAt, now, "ago", "from now") + ")"
		}
		fmt.Fprintf(w, "%4d %s %s%s\n", t.Id, check, desc, age)
	}
}

func newAddCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "add <description>",
		Short: "Add a task unless it already exists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := strings.Join(args, " ")
			if verr := form.Validate(desc, form.CreateMode()); verr != nil {
				return verr
			}

			client := e.client()
			notifier := printNotifier(cmd.OutOrStdout())

			store := search.NewStore(client, search.Options{Notifier: notifier})
			if err := store.LoadTasks(cmd.Context(), desc); err != nil {
				return err
			}
			if store.TaskExistsExactly(desc) {
				notify.Error(notifier, form.MsgDuplicate)
				return form.ErrDuplicate
			}

			task, err := client.Create(cmd.Context(), models.TaskInput{Description: desc})
			if err != nil {
				notify.Failure(notifier, err, "Error saving the task")
				return err
			}
			notify.Success(notifier, fmt.Sprintf("%s (#%d)", form.MsgCreated, task.Id))
			return nil
		},
	}
}

func newDoneCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client := e.client()
			task, err := client.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			store := search.NewStore(client, search.Options{})
			store.SetTasks([]models.Task{*task})
			list := tasklist.New(store, client, printNotifier(cmd.OutOrStdout()))
			if err := list.Toggle(cmd.Context(), id); err != nil {
				return err
			}

			state := "pending"
			if store.Tasks()[0].Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Task #%d is now %s\n", id, state)
			return nil
		},
	}
}

func newRemoveCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var confirm tasklist.Confirmer = promptConfirmer{in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
			if yes, _ := cmd.Flags().GetBool("yes"); yes {
				confirm = tasklist.Answer(true)
			}

			client := e.client()
			store := search.NewStore(client, search.Options{})
			list := tasklist.New(store, client, printNotifier(cmd.OutOrStdout()))
			deleted, err := list.Delete(cmd.Context(), id, confirm)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			}
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Delete without asking")
	return cmd
}

type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(p.in).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}

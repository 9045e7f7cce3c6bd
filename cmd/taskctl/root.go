package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/phrazzld/tasktracker/internal/client"
	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/spf13/cobra"
)

// DefaultServerURL is used when neither --server nor TASKTRACKER_SERVER_URL is set.
const DefaultServerURL = "http://localhost:3000"

type rootOptions struct {
	server  string
	timeout time.Duration
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	defaultServer := os.Getenv("TASKTRACKER_SERVER_URL")
	if defaultServer == "" {
		defaultServer = DefaultServerURL
	}

	cmd := &cobra.Command{
		Use:   "taskctl",
		Short: "Manage tasks on a task tracker server",
		Long: `taskctl lists, creates, updates and deletes tasks through the
task tracker HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", defaultServer, "Base URL of the task tracker server")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Per-request timeout")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log retries to stderr")

	cmd.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newSetCompletedCmd(opts, "done", "Mark a task as completed", true),
		newSetCompletedCmd(opts, "undo", "Mark a task as not completed", false),
		newRenameCmd(opts),
		newRemoveCmd(opts),
	)
	return cmd
}

func (o *rootOptions) client(cmd *cobra.Command) *client.Client {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return client.New(o.server,
		client.WithHTTPClient(&http.Client{Timeout: o.timeout}),
		client.WithLogger(log),
	)
}

func printTask(w io.Writer, t domain.Task) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "[%s] %s  %s\n", mark, t.ID, t.Title)
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := opts.client(cmd).ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks.")
				return nil
			}
			for _, t := range tasks {
				printTask(out, t)
			}
			return nil
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var completed bool
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := opts.client(cmd).CreateTask(cmd.Context(), args[0], completed)
			if err != nil {
				return err
			}
			printTask(cmd.OutOrStdout(), task)
			return nil
		},
	}
	cmd.Flags().BoolVar(&completed, "done", false, "Create the task already completed")
	return cmd
}

func newSetCompletedCmd(opts *rootOptions, use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := opts.client(cmd).UpdateTask(cmd.Context(), args[0], domain.TaskPatch{Completed: &completed})
			if err != nil {
				return err
			}
			printTask(cmd.OutOrStdout(), task)
			return nil
		},
	}
}

func newRenameCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Change the title of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[1]
			task, err := opts.client(cmd).UpdateTask(cmd.Context(), args[0], domain.TaskPatch{Title: &title})
			if err != nil {
				return err
			}
			printTask(cmd.OutOrStdout(), task)
			return nil
		},
	}
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client(cmd).DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

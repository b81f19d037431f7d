// Package cli implements the one-shot todo command line.
package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"localstash/internal/exitcode"
	"localstash/internal/todo"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

type command struct {
	usage    string
	synopsis string
	needsApp bool
	run      func(app *todo.App, args []string, out, errOut io.Writer) int
}

// commands is filled in init because runHelp reads it.
var commands map[string]command

func init() {
	commands = map[string]command{
		"add":     {"todo add <description...>", "Queue a new task", true, runAdd},
		"list":    {"todo list", "List pending tasks, oldest first", true, runList},
		"done":    {"todo done", "Complete the oldest task", true, runDone},
		"rm":      {"todo rm <n>", "Delete the task at position n (1-based)", true, runRm},
		"help":    {"todo help", "Print usage", false, runHelp},
		"version": {"todo version", "Print version", false, runVersion},
	}
}

// Dispatcher maps command-line arguments onto todo.App calls.
type Dispatcher struct {
	path string
	opts []todo.Option
}

// NewDispatcher returns a dispatcher operating on the todo file at path.
func NewDispatcher(path string, opts ...todo.Option) *Dispatcher {
	return &Dispatcher{path: path, opts: opts}
}

// Run executes the command named by args[0] and returns the exit code.
func (d *Dispatcher) Run(args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return runHelp(nil, nil, out, errOut)
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}

	var app *todo.App
	if cmd.needsApp {
		var err error
		app, err = todo.LoadOrNew(d.path, d.opts...)
		if err != nil {
			log.Debug().Err(err).Str("path", d.path).Msg("load todo queue")
			fmt.Fprintf(errOut, "error: failed to load todo queue: %v\n", err)
			return exitcode.StorageError
		}
	}
	return cmd.run(app, args[1:], out, errOut)
}

func runAdd(app *todo.App, args []string, out, errOut io.Writer) int {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		fmt.Fprintln(errOut, "error: task description required")
		return exitcode.UserError
	}
	task, err := app.AddTask(description)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to add task: %v\n", err)
		return exitcode.StorageError
	}
	fmt.Fprintf(out, "Added task #%d: %s\n", task.ID, task.Description)
	return exitcode.Success
}

func runList(app *todo.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if app.Len() == 0 {
		fmt.Fprintln(out, "No pending tasks.")
		return exitcode.Success
	}
	for task := range app.Tasks() {
		fmt.Fprintf(out, "#%d [%d] %s\n", task.ID, task.CreatedAt, task.Description)
	}
	return exitcode.Success
}

func runDone(app *todo.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	task, ok, err := app.CompleteNext()
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to complete task: %v\n", err)
		return exitcode.StorageError
	}
	if !ok {
		fmt.Fprintln(out, "No tasks to complete.")
		return exitcode.Success
	}
	fmt.Fprintf(out, "Completed task #%d: %s\n", task.ID, task.Description)
	return exitcode.Success
}

func runRm(app *todo.App, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task position required")
		return exitcode.UserError
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fmt.Fprintf(errOut, "error: invalid task position: %s\n", args[0])
		return exitcode.UserError
	}

	task, ok, err := app.DeleteAt(n - 1)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to delete task: %v\n", err)
		return exitcode.StorageError
	}
	if !ok {
		fmt.Fprintf(errOut, "error: no task at position %d\n", n)
		return exitcode.UserError
	}
	fmt.Fprintf(out, "Deleted task #%d: %s\n", task.ID, task.Description)
	return exitcode.Success
}

func runHelp(_ *todo.App, _ []string, out, _ io.Writer) int {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "Usage:")
	for _, name := range names {
		c := commands[name]
		fmt.Fprintf(out, "  %-26s %s\n", c.usage, c.synopsis)
	}
	return exitcode.Success
}

func runVersion(_ *todo.App, _ []string, out, _ io.Writer) int {
	fmt.Fprintf(out, "todo %s\n", Version)
	return exitcode.Success
}

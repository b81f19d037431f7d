// Package exitcode defines exit codes for the command-line tools.
package exitcode

const (
	Success = 0

	// UserError indicates bad arguments or a reference to a missing task.
	UserError = 1

	// StorageError indicates the todo file or a results database could not
	// be read, decoded or written.
	StorageError = 2
)

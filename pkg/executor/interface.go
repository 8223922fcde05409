package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteStream runs the command and invokes onLine for every line the
	// command prints to stdout or stderr, in arrival order. Lines are split
	// on both \n and \r so progress bars that rewrite a line still stream.
	ExecuteStream(ctx context.Context, onLine func(line string), name string, args ...string) error
}

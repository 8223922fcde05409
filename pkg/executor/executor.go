package executor

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Include stderr in error message for debugging
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return "", fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), nil
}

// ExecuteStream runs an external command and streams its combined output line
// by line. The last 8 KB of stderr are kept for the error message.
func (e *implExecutor) ExecuteStream(ctx context.Context, onLine func(line string), name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("setup stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("setup stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start '%s': %w", name, err)
	}

	var errBuf strings.Builder
	var mu sync.Mutex
	var wg sync.WaitGroup

	read := func(r io.Reader, isStderr bool) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		scanner.Split(splitByNewlineOrCR)
		for scanner.Scan() {
			line := scanner.Text()
			if isStderr {
				mu.Lock()
				appendLimited(&errBuf, line)
				mu.Unlock()
			}
			if onLine != nil && line != "" {
				onLine(line)
			}
		}
	}

	wg.Add(2)
	go read(stdoutPipe, false)
	go read(stderrPipe, true)
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		mu.Lock()
		defer mu.Unlock()
		stderrStr := strings.TrimSpace(errBuf.String())
		if stderrStr != "" {
			return fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return fmt.Errorf("command '%s' failed: %w", name, err)
	}
	return nil
}

// splitByNewlineOrCR treats both \n and \r as line terminators so that
// carriage-return progress output is delivered as separate lines.
func splitByNewlineOrCR(data []byte, atEOF bool) (advance int, token []byte, err error) {
	for i := 0; i < len(data); i++ {
		if data[i] == '\n' || data[i] == '\r' {
			if i == 0 {
				return 1, nil, nil
			}
			return i + 1, data[:i], nil
		}
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func appendLimited(b *strings.Builder, line string) {
	const maxKeep = 8192
	if b.Len() >= maxKeep {
		return
	}
	toWrite := line + "\n"
	if remain := maxKeep - b.Len(); len(toWrite) > remain {
		toWrite = toWrite[:remain]
	}
	b.WriteString(toWrite)
}

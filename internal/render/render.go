// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render implements the optional page-fetch collaborator: an
// external renderer command (typically a headless browser) that resolves a
// URL into fully rendered HTML. The materializer falls back to plain HTTP
// whenever the collaborator is unavailable or fails.
// Implements: prd010-research (R3, collaborator);
//
//	docs/ARCHITECTURE § Materialization.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/pdiddy/claimcheck/internal/materialize"
)

// urlPlaceholder in an argument is replaced by the target URL.
const urlPlaceholder = "{url}"

// executor abstracts command execution for testing.
type executor interface {
	RunPiped(ctx context.Context, name string, args []string, stdout *bytes.Buffer) error
}

type osExecutor struct{}

func (osExecutor) RunPiped(ctx context.Context, name string, args []string, stdout *bytes.Buffer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	return cmd.Run()
}

// CommandFetcher runs a configured renderer command per URL and returns its
// stdout as the page HTML.
type CommandFetcher struct {
	Command string
	Args    []string

	exec executor
}

// NewCommandFetcher parses a command line such as
// "chromium --headless --dump-dom {url}" into a fetcher. An empty command
// line yields nil, meaning no collaborator is configured.
func NewCommandFetcher(commandLine string) *CommandFetcher {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	args := fields[1:]
	if !strings.Contains(commandLine, urlPlaceholder) {
		args = append(args, urlPlaceholder)
	}
	return &CommandFetcher{Command: fields[0], Args: args, exec: osExecutor{}}
}

// FetchPage runs the renderer for one URL under the given timeout. Empty
// output is an error so the materializer moves on to the HTTP fallback.
func (f *CommandFetcher) FetchPage(ctx context.Context, url string, timeout time.Duration, _ bool) (*materialize.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = strings.ReplaceAll(a, urlPlaceholder, url)
	}

	var out bytes.Buffer
	if err := f.exec.RunPiped(ctx, f.Command, args, &out); err != nil {
		return nil, fmt.Errorf("rendering %s with %s: %w", url, f.Command, err)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("renderer produced empty output for %s", url)
	}

	return &materialize.Page{HTML: out.String(), FinalURL: url}, nil
}

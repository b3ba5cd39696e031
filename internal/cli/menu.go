package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/storybuilder/internal/presentation/tui"
	"github.com/aretw0/storybuilder/pkg/runner"
)

// Mode is a launcher menu entry.
type Mode int

const (
	ModeConsole Mode = iota + 1
	ModeBrowser
)

var modeLabels = []string{
	"Play in the console",
	"Play in the browser (HTTP server)",
}

// ChooseMode shows the launcher menu and reads until a listed number is
// entered. Anything else is answered with runner.RepromptMessage.
// It returns runner.ErrAborted on EOF or an exit command.
func ChooseMode(in *bufio.Reader, out io.Writer) (Mode, error) {
	fmt.Fprintln(out, "How would you like to read the story?")
	for i, label := range modeLabels {
		fmt.Fprintf(out, "%d. %s\n", i+1, label)
	}

	for {
		fmt.Fprint(out, runner.Prompt(len(modeLabels)))
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("input error: %w", err)
		}
		eof := err != nil
		if eof && line == "" {
			fmt.Fprintln(out)
			return 0, runner.ErrAborted
		}

		if text, err := runner.SanitizeInput(strings.TrimSpace(line)); err == nil {
			if runner.IsExitCommand(text) {
				return 0, runner.ErrAborted
			}
			if idx, err := runner.ParseChoice(text, len(modeLabels)); err == nil {
				return Mode(idx + 1), nil
			}
		}
		fmt.Fprintln(out, runner.RepromptMessage)

		if eof {
			return 0, runner.ErrAborted
		}
	}
}

// RunLauncher is the default action: it shows the menu and starts the
// chosen front-end. Both share in, so buffered input is not lost.
func RunLauncher(ctx context.Context, opts Options, in io.Reader, out io.Writer) error {
	if isTerminal(out) {
		tui.PrintBanner(out)
	}

	br := bufio.NewReader(in)
	mode, err := ChooseMode(br, out)
	if err != nil {
		return handleExecutionError(err)
	}

	switch mode {
	case ModeBrowser:
		return RunServe(ctx, opts, out)
	default:
		return RunPlay(ctx, opts, br, out)
	}
}

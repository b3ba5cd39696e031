/*
Package runner implements the reading loop and I/O orchestration for a story engine.

It acts as the bridge between the stateless traversal engine and a reader.
The runner shows the current node, reads a 1-based choice number, re-prompts
on anything invalid and prints a recap once an ending is reached.

# Key Components

  - Runner: The console loop.
  - IOHandler: Decouples how views are shown and choices are read.
  - TextHandler: Line-oriented console IO with optional markdown rendering.
  - JSONHandler: JSON-Lines IO for scripted clients.
  - AdvanceAndView: One-shot helpers used by the HTTP and MCP adapters.

# Usage

	r := runner.NewRunner(
		runner.WithTitle("Story Builder (Console)"),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if _, err := r.Run(ctx, engine, nil); err != nil && !errors.Is(err, runner.ErrAborted) {
		log.Fatal(err)
	}
*/
package runner

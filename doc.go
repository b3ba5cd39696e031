/*
Package storybuilder is a branching-narrative ("choose your own adventure") engine.

A story is a fixed directed graph of nodes. Each node carries a line of text, an
optional illustration and up to a few labeled choices; nodes without choices are
endings. The engine validates the graph once when it is loaded and then walks it
for any number of readers at the same time.

# Concept

The graph is immutable and the engine is stateless. Reading progress lives in a
domain.Session value that is passed to, and returned from, every operation:

  - Start creates a session at the start node and records its text.
  - CurrentView projects the current node (text, image, numbered choices).
  - Advance follows a choice by its zero-based index and returns a new session.
  - IsFinished reports whether the current node is an ending.
  - History returns every text visited so far.

A failed Advance leaves the session untouched, so front-ends can simply
re-prompt.

# Usage

	eng, err := storybuilder.New("") // built-in story
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	s, _ := eng.Start(ctx)
	for !eng.IsFinished(s) {
		view, _ := eng.CurrentView(s)
		fmt.Println(view.Text)
		s, _ = eng.Advance(ctx, s, 0)
	}
	fmt.Println(strings.Join(eng.History(s), "\n"))

# Sources

Stories come from a YAML file, a directory of markdown files (Loam), the
embedded stories in pkg/stories, or any ports.GraphLoader given with WithLoader
(see pkg/adapters/memory and pkg/dsl).
*/
package storybuilder

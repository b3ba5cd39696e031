package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

const caveStory = `title: Cave
start: start
nodes:
  start:
    text: You stand at a fork.
    choices:
      - {label: Go left, target: left}
      - {label: Go right, target: right}
  left:
    text: A quiet exit.
  right:
    text: A dragon sleeps.
    image: dragon.png
    choices:
      - {label: Sneak back, target: left}
`

const brokenStory = `title: Broken
start: start
nodes:
  start:
    text: Nowhere to go.
    choices:
      - {label: Jump, target: ghost}
  island:
    text: Nobody comes here.
`

func writeStory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "story.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testOptions(t *testing.T, story string) Options {
	t.Helper()
	return Options{
		Story:     writeStory(t, story),
		Assets:    t.TempDir(),
		LogLevel:  "error",
		LogFormat: "text",
		Addr:      "127.0.0.1:0",
		Transport: "stdio",
	}
}

func redisURL(t *testing.T) (*miniredis.Miniredis, string) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, "redis://" + mr.Addr()
}

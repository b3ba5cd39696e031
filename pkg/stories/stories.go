// Package stories ships the built-in stories, embedded in the binary.
//
// The default story, "gato", follows a cat through 19 scenes and 9 endings.
package stories

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/aretw0/storybuilder/pkg/adapters/file"
)

// Default is the story used when no source is configured.
const Default = "gato"

//go:embed *.yaml
var content embed.FS

// Names lists the built-in stories.
func Names() []string {
	entries, _ := fs.Glob(content, "*.yaml")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e, ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Open returns a loader for a built-in story.
func Open(name string) (*file.Loader, error) {
	data, err := content.ReadFile(name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown built-in story %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return file.Parse(data)
}

// OpenDefault returns a loader for the default story.
func OpenDefault() (*file.Loader, error) {
	return Open(Default)
}

package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the launcher banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`  ___ _                 ___      _ _    _`, "#fbbf24"},
		{` / __| |_ ___ _ _ _  _ | _ )_  _(_) |__| |___ _ _`, "#f59e0b"},
		{` \__ \  _/ _ \ '_| || || _ \ || | | / _' / -_) '_|`, "#f97316"},
		{` |___/\__\___/_|  \_, ||___/\_,_|_|_\__,_\___|_|`, "#ef4444"},
		{`                  |__/`, "#dc2626"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "STORYBUILDER_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
	ErrNotANumber    = errors.New("input is not a number")
	ErrOutOfRange    = errors.New("choice number out of range")
)

// SanitizeInput cleans reader input by enforcing size limits,
// validating UTF-8, and stripping dangerous control characters.
func SanitizeInput(input string) (string, error) {
	limit := getMaxInputSize()
	if len(input) > limit {
		// Rejected rather than truncated so a cut-off number is never accepted.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Keep \n, \t and \r; drop ESC, NUL, BEL and friends.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// ParseChoice converts a 1-based choice number typed by a reader into the
// 0-based index accepted by Advance.
func ParseChoice(input string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, input)
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("%w: %d not in 1..%d", ErrOutOfRange, n, count)
	}
	return n - 1, nil
}

// Prompt returns the choice prompt for a node with count choices.
func Prompt(count int) string {
	switch count {
	case 0:
		return ""
	case 1:
		return "Choose an option (1): "
	}
	nums := make([]string, count)
	for i := range nums {
		nums[i] = strconv.Itoa(i + 1)
	}
	return fmt.Sprintf("Choose an option (%s or %s): ", strings.Join(nums[:count-1], ", "), nums[count-1])
}

// IsExitCommand reports whether input asks to leave the story.
func IsExitCommand(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "quit", "q":
		return true
	}
	return false
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func getMaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}

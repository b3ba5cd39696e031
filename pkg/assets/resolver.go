// Package assets resolves node illustrations for the front-ends.
//
// Images are looked up in a directory, decoded (PNG, JPEG or GIF), shrunk by
// the smallest integer factor that fits the display box and cached by path.
// A missing image is never fatal: front-ends render Placeholder text instead.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"

	"github.com/aretw0/storybuilder/internal/logging"
)

const (
	// MaxWidth and MaxHeight bound a prepared image.
	MaxWidth  = 400
	MaxHeight = 300
)

var (
	// ErrAssetNotFound is returned when the referenced file does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrNoImage is returned for nodes without an illustration.
	ErrNoImage = errors.New("no image")

	// ErrInvalidName is returned for references that escape the asset directory.
	ErrInvalidName = errors.New("invalid asset name")
)

// Image is a decoded, display-ready illustration.
type Image struct {
	Name   string
	Path   string
	Factor int
	Image  image.Image
}

// Width returns the prepared width in pixels.
func (i *Image) Width() int { return i.Image.Bounds().Dx() }

// Height returns the prepared height in pixels.
func (i *Image) Height() int { return i.Image.Bounds().Dy() }

// Resolver maps image references to prepared images.
// Safe for concurrent use.
type Resolver struct {
	dir       string
	maxWidth  int
	maxHeight int
	logger    *slog.Logger

	mu    sync.Mutex
	cache map[string]*Image
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxSize overrides the display box.
func WithMaxSize(width, height int) Option {
	return func(r *Resolver) {
		r.maxWidth = width
		r.maxHeight = height
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a resolver rooted at dir.
func NewResolver(dir string, opts ...Option) *Resolver {
	r := &Resolver{
		dir:       dir,
		maxWidth:  MaxWidth,
		maxHeight: MaxHeight,
		logger:    logging.NewNop(),
		cache:     make(map[string]*Image),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the asset directory.
func (r *Resolver) Dir() string {
	return r.dir
}

// Resolve returns the prepared image for name, decoding it on first use.
func (r *Resolver) Resolve(name string) (*Image, error) {
	if name == "" {
		return nil, ErrNoImage
	}
	path, err := r.path(name)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if img, ok := r.cache[path]; ok {
		return img, nil
	}

	src, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	factor := Factor(b.Dx(), b.Dy(), r.maxWidth, r.maxHeight)
	img := &Image{Name: name, Path: path, Factor: factor, Image: Subsample(src, factor)}
	r.cache[path] = img

	r.logger.Debug("asset prepared", "name", name, "factor", factor, "width", img.Width(), "height", img.Height())
	return img, nil
}

// WritePNG encodes the prepared image for name.
func (r *Resolver) WritePNG(w io.Writer, name string) error {
	img, err := r.Resolve(name)
	if err != nil {
		return err
	}
	return png.Encode(w, img.Image)
}

// Describe returns a one-line text rendition for consoles: the image size
// when it resolves, or a placeholder.
func (r *Resolver) Describe(name string) string {
	img, err := r.Resolve(name)
	if err != nil {
		return Placeholder(name, err)
	}
	return fmt.Sprintf("[image: %s %dx%d]", name, img.Width(), img.Height())
}

// Placeholder is the text shown instead of an image that could not be resolved.
func Placeholder(name string, err error) string {
	switch {
	case errors.Is(err, ErrNoImage):
		return "[no image]"
	case errors.Is(err, ErrAssetNotFound):
		return fmt.Sprintf("[image not found: %s]", name)
	default:
		return fmt.Sprintf("[image unavailable: %s]", name)
	}
}

func (r *Resolver) path(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(r.dir, clean), nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, filepath.Base(path))
		}
		return nil, fmt.Errorf("open asset: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

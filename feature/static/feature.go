package static

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"go.uber.org/zap"
)

// Feature serves files from a directory on disk.
type Feature struct {
	cfg    Config
	logger *zap.Logger
	root   string
}

// NewFeature creates the static file feature.
func NewFeature(cfg Config, logger *zap.Logger) *Feature {
	return &Feature{cfg: cfg, logger: logger}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "static"
}

// IsEnabled reports whether a serving root is configured.
func (f *Feature) IsEnabled() bool {
	return f.cfg.Root != ""
}

// Root returns the absolute serving directory once loaded.
func (f *Feature) Root() string {
	return f.root
}

// Load mounts the file handler on app. Files are opened per request, so the
// served tree always reflects what is on disk.
func (f *Feature) Load(app fiber.Router) error {
	root, err := filepath.Abs(f.cfg.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root %s: %w", f.cfg.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", root)
	}
	f.root = root

	index := f.cfg.Index
	if index == "" {
		index = "index.html"
	}
	if !strings.HasPrefix(index, "/") {
		index = "/" + index
	}

	files := newDirFS(root)
	app.Use(redirectDirs(files))
	app.Use(filesystem.New(filesystem.Config{
		Root:   files,
		Browse: f.cfg.Browse,
		Index:  index,
	}))

	f.logger.Info("Static file serving enabled",
		zap.String("root", root),
		zap.Bool("browse", f.cfg.Browse))
	return nil
}

// redirectDirs sends directory requests without a trailing slash to the
// slashed URL, so relative links inside the page resolve against it.
func redirectDirs(files dirFS) fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := c.Method()
		if method != fiber.MethodGet && method != fiber.MethodHead {
			return c.Next()
		}
		p := c.Path()
		if strings.HasSuffix(p, "/") || !files.isDir(p) {
			return c.Next()
		}

		target, query, _ := strings.Cut(c.OriginalURL(), "?")
		target += "/"
		if query != "" {
			target += "?" + query
		}
		return c.Redirect(target, fiber.StatusMovedPermanently)
	}
}

package interactive

import (
	"embed"
	"io"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/featureviewer/pkg/capability"
	"github.com/matzehuels/featureviewer/pkg/errors"
)

// RuntimePath is the location of the canvas runtime inside the runtime FS.
const RuntimePath = "assets/canvas.js"

//go:embed assets/canvas.js
var embeddedRuntime embed.FS

// Option configures a Backend.
type Option func(*Backend)

// WithRuntime replaces the embedded canvas runtime. fsys must contain
// RuntimePath.
func WithRuntime(fsys fs.FS) Option { return func(b *Backend) { b.runtime = fsys } }

// WithTables replaces the column source builder. A nil builder makes the
// backend unavailable.
func WithTables(tb TableBuilder) Option { return func(b *Backend) { b.tables = tb } }

// WithLogger sets the logger used during Build.
func WithLogger(l *log.Logger) Option { return func(b *Backend) { b.logger = l } }

// Backend builds interactive documents.
type Backend struct {
	runtime fs.FS
	tables  TableBuilder
	logger  *log.Logger
}

// New returns a backend with the embedded runtime and FromRecords.
func New(opts ...Option) *Backend {
	b := &Backend{
		runtime: embeddedRuntime,
		tables:  FromRecords,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Requirements lists what Build and RenderHTML need.
func (b *Backend) Requirements() []capability.Requirement {
	return []capability.Requirement{
		capability.Asset(b.runtime, RuntimePath, "interactive canvas runtime"),
		capability.Value("column source builder", b.tables != nil),
	}
}

// Runtime returns the canvas runtime script.
func (b *Backend) Runtime() ([]byte, error) {
	if b.runtime == nil {
		return nil, errors.MissingDependency("interactive canvas runtime not configured")
	}
	data, err := fs.ReadFile(b.runtime, RuntimePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMissingDependency, err, "read %s", RuntimePath)
	}
	return data, nil
}

// Package capability checks, once and up front, that the libraries, binaries
// and assets a render needs are available.
//
// Backends describe what they need as [Requirement] values. Callers collect
// them and run [Probe] before doing any layout work, so a missing
// rasteriser or an absent runtime asset fails the render immediately with a
// MISSING_DEPENDENCY error instead of halfway through.
package capability

import (
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/matzehuels/featureviewer/pkg/errors"
)

// Requirement is one capability a backend depends on.
type Requirement struct {
	// Name identifies the capability in error messages (e.g. "rsvg-convert").
	Name string
	// Hint tells the user how to provide it.
	Hint string
	// Check returns nil when the capability is available.
	Check func() error
}

// Probe runs every check and returns a single MISSING_DEPENDENCY error
// naming all absent requirements, or nil when everything is available.
func Probe(reqs ...Requirement) error {
	var missing []string
	for _, r := range reqs {
		if r.Check == nil {
			continue
		}
		if err := r.Check(); err != nil {
			msg := r.Name
			if r.Hint != "" {
				msg += " (" + r.Hint + ")"
			}
			missing = append(missing, msg)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.MissingDependency("missing required capabilities: %s", strings.Join(missing, ", "))
}

// Binary requires an executable on PATH.
func Binary(name, hint string) Requirement {
	return Requirement{
		Name: name,
		Hint: hint,
		Check: func() error {
			_, err := exec.LookPath(name)
			return err
		},
	}
}

// Asset requires a non-empty file at path in fsys.
func Asset(fsys fs.FS, path, name string) Requirement {
	return Requirement{
		Name: name,
		Hint: "asset " + path + " not found",
		Check: func() error {
			if fsys == nil {
				return fmt.Errorf("no filesystem")
			}
			info, err := fs.Stat(fsys, path)
			if err != nil {
				return err
			}
			if info.Size() == 0 {
				return fmt.Errorf("%s is empty", path)
			}
			return nil
		},
	}
}

// Value requires an injected component to be present.
func Value(name string, present bool) Requirement {
	return Requirement{
		Name: name,
		Hint: "not configured",
		Check: func() error {
			if !present {
				return fmt.Errorf("%s not configured", name)
			}
			return nil
		},
	}
}

package lint

import (
	"context"

	"github.com/yaklabco/rbfix/pkg/rubyast"
)

// Parser parses Ruby source into a rubyast.File.
//
// Implementations (e.g., parser/treesitter) must be deterministic for a given
// (path, content) pair, safe for concurrent use, and free of I/O.
type Parser interface {
	// Parse converts raw Ruby bytes into a File.
	//
	// The path is used for diagnostics only. The content must not be mutated.
	// On success the returned File has a non-nil Root and Buffer, and a
	// source that is byte-equal to content. Files with syntax errors still
	// parse; File.HasErrors reports them. On error no partial File is
	// returned.
	Parse(ctx context.Context, path string, content []byte) (*rubyast.File, error)
}

package config

import "context"

// Loader is the interface for a format-specific profile loader.
type Loader interface {
	// Load reads every profile found at the given paths. Paths may be files
	// or directories; directories are searched recursively.
	Load(ctx context.Context, paths ...string) ([]*Profile, error)
}

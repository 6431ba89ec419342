package catalog

import (
	"context"
	"fmt"
)

// Source names accepted by Open
const (
	SourceYAML   = "yaml"
	SourceSQLite = "sqlite"
)

// Open loads and validates a catalog from the named source
func Open(ctx context.Context, source, path string) (*Catalog, error) {
	var (
		c   *Catalog
		err error
	)
	switch source {
	case SourceYAML:
		c, err = LoadYAML(path)
	case SourceSQLite:
		var s *Store
		s, err = OpenStore(path)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		c, err = s.Load(ctx)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", source)
	}
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

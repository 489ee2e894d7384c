package resmgr

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Source fetches raw resource documents by path.
type Source interface {
	// Fetch returns the document at p or an error matching ErrNotFound.
	Fetch(ctx context.Context, p string) ([]byte, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, p string) ([]byte, error)

func (f SourceFunc) Fetch(ctx context.Context, p string) ([]byte, error) {
	return f(ctx, p)
}

// FSSource reads documents from a file system, e.g. an embed.FS or
// os.DirFS.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource returns a Source reading from fsys.
//
//	//go:embed locales
//	var locales embed.FS
//
//	src := resmgr.NewFSSource(locales)
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

func (s *FSSource) Fetch(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := path.Clean(strings.TrimPrefix(p, "/"))
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	data, err := fs.ReadFile(s.fsys, name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return data, nil
}

// Package fileio writes files atomically and durably.
package fileio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/renameio/v2"

	"github.com/oakwood-commons/docsite/pkg/logger"
)

// ErrExists is returned by WriteNew when the target exists and force is off.
var ErrExists = errors.New("file already exists")

// WriteFile replaces path with data. The content is written to a temporary
// file in the same directory, fsynced and renamed over path, so readers see
// either the old or the new file, never a partial one.
func WriteFile(ctx context.Context, path string, data []byte, perm fs.FileMode) error {
	lgr := logger.FromContext(ctx)

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(perm))
	if err != nil {
		return fmt.Errorf("create pending file for %s: %w", path, err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			lgr.V(1).Info("cleanup pending file", logger.FileKey, path, "error", err.Error())
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return nil
}

// WriteNew is WriteFile that refuses to replace an existing path unless
// force is set.
func WriteNew(ctx context.Context, path string, data []byte, perm fs.FileMode, force bool) error {
	if !force {
		if _, err := os.Lstat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return WriteFile(ctx, path, data, perm)
}

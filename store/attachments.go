package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rustyeddy/tradebook/pkg/fsutil"
)

// SaveAttachment copies src into the account's images directory under a
// millisecond-timestamp-prefixed name, so repeated imports of the same file
// never collide. It returns the stored absolute path. Attachments are
// copy-once and never rewritten in place.
func (s *Store) SaveAttachment(src string) (string, error) {
	dir := filepath.Join(s.dir(), imagesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.log.Error("failed to create images directory", "dir", dir, "error", err)
		return "", fmt.Errorf("create images directory: %w", err)
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(src))
	dst := filepath.Join(dir, name)

	if err := fsutil.CopyFile(src, dst); err != nil {
		s.log.Error("failed to store attachment", "src", src, "dst", dst, "error", err)
		s.notice(fmt.Sprintf("Failed to save image: %v", err))
		return "", fmt.Errorf("store attachment: %w", err)
	}

	abs, err := filepath.Abs(dst)
	if err != nil {
		return dst, nil
	}
	return abs, nil
}

// DeleteAttachment removes the stored file. Dropping the reference from
// the owning trade or tag is the caller's job (RemoveImage and the bulk
// tag setters). A failure is logged and returned, not fatal.
func (s *Store) DeleteAttachment(path string) error {
	if err := os.Remove(path); err != nil {
		s.log.Error("failed to delete attachment", "path", path, "error", err)
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}

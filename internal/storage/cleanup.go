package storage

import (
	"os"
	"path/filepath"
	"time"
)

// FileSize returns the size of a file in bytes, or 0 if it does not exist.
func (s *Store) FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// Delete removes a file if it exists and reports whether it was removed.
func (s *Store) Delete(path string) bool {
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return false
	}
	return os.Remove(path) == nil
}

// CleanupOldFiles removes regular files in dir older than maxAge and returns
// how many were deleted. A missing directory cleans zero files.
func (s *Store) CleanupOldFiles(dir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if os.Remove(filepath.Join(dir, entry.Name())) == nil {
				deleted++
			}
		}
	}
	return deleted, nil
}

// Package archive preserves per-commit snapshot files as lz4 archives.
package archive

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4/v4"
)

// archiveSuffix is appended to the commit short hash to name each archive.
const archiveSuffix = ".csv.lz4"

// Keeper copies each commit's raw snapshot into an lz4 archive directory.
// Archives use the lz4 frame format so standard tooling can read them back.
type Keeper struct {
	dir string
	log *slog.Logger
}

// NewKeeper creates the archive directory and a Keeper writing into it.
func NewKeeper(dir string, logger *slog.Logger) (*Keeper, error) {
	if logger == nil {
		logger = slog.Default()
	}

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}

	return &Keeper{dir: dir, log: logger}, nil
}

// Keep compresses the snapshot file at path into <short>.csv.lz4. A second
// Keep for the same short hash overwrites the first.
func (k *Keeper) Keep(short, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer src.Close()

	dstPath := filepath.Join(k.dir, short+archiveSuffix)

	dst, createErr := os.Create(dstPath)
	if createErr != nil {
		return fmt.Errorf("create archive: %w", createErr)
	}
	defer dst.Close()

	zw := lz4.NewWriter(dst)

	_, copyErr := io.Copy(zw, src)
	if copyErr != nil {
		return fmt.Errorf("compress snapshot: %w", copyErr)
	}

	closeErr := zw.Close()
	if closeErr != nil {
		return fmt.Errorf("compress snapshot: %w", closeErr)
	}

	k.log.Debug("archived snapshot", "commit", short, "file", dstPath)

	return nil
}

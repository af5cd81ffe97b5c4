package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Exporter writes values of one type into a directory through a Codec.
// Basenames are sanitized and deduplicated so no dataset overwrites another.
type Exporter[T any] struct {
	dir   string
	codec Codec
	used  map[string]bool
	log   *slog.Logger
}

// New creates the export directory and an Exporter writing into it.
func New[T any](dir string, codec Codec, logger *slog.Logger) (*Exporter[T], error) {
	if logger == nil {
		logger = slog.Default()
	}

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	return &Exporter[T]{dir: dir, codec: codec, used: make(map[string]bool), log: logger}, nil
}

// Write persists one value under the sanitized basename plus the codec's
// extension.
func (e *Exporter[T]) Write(basename string, value T) error {
	filename := e.stem(basename) + e.codec.Extension()
	path := filepath.Join(e.dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	encodeErr := e.codec.Encode(file, value)
	if encodeErr != nil {
		return fmt.Errorf("encode %s: %w", filename, encodeErr)
	}

	e.log.Debug("exported dataset", "file", path)

	return nil
}

func (e *Exporter[T]) stem(basename string) string {
	base := fileStem(basename)

	stem := base
	for n := 2; e.used[stem]; n++ {
		stem = fmt.Sprintf("%s-%d", base, n)
	}

	e.used[stem] = true

	return stem
}

// fileStem maps a dataset name onto a safe filename stem.
func fileStem(name string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}

	stem := strings.Trim(b.String(), "-")
	if stem == "" {
		return "dataset"
	}

	return stem
}

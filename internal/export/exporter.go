package export

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"

	"github.com/roach88/fbxport/internal/document"
	"github.com/roach88/fbxport/internal/fbx"
	"github.com/roach88/fbxport/internal/journal"
)

// tmpSuffix is appended to the destination while it is being written.
const tmpSuffix = ".tmp"

// Recorder receives an entry for every export that wrote a file.
// *journal.Store implements it.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) (int64, error)
}

// Result describes a finished export.
type Result struct {
	Path string `json:"path"`
	// Skipped is set when the destination existed and overwriting was off.
	Skipped  bool   `json:"skipped"`
	Size     int    `json:"size,omitempty"`
	Checksum string `json:"checksum,omitempty"`
	FileID   string `json:"file_id,omitempty"`
}

// Exporter writes documents to a filesystem.
//
// Thread-safety: Exporter holds only configuration and is safe for
// concurrent use, provided each call gets its own document.
type Exporter struct {
	fs        afero.Fs
	overwrite bool
	version   uint32
	logger    *slog.Logger
	recorder  Recorder
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithOverwrite controls whether an existing destination is replaced.
// The default is false: existing files are left alone.
func WithOverwrite(overwrite bool) Option {
	return func(e *Exporter) { e.overwrite = overwrite }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// WithVersion sets the version written to the preamble. The default is
// fbx.Version7400.
func WithVersion(v uint32) Option {
	return func(e *Exporter) { e.version = v }
}

// WithRecorder records every written export.
func WithRecorder(r Recorder) Option {
	return func(e *Exporter) { e.recorder = r }
}

// New creates an Exporter writing to fs.
func New(fs afero.Fs, opts ...Option) *Exporter {
	e := &Exporter{fs: fs, version: fbx.Version7400, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export marshals doc and writes it to path.
//
// If path exists and overwriting is off, nothing is written and the result
// has Skipped set; that is not an error. The context is checked before any
// I/O; marshalling itself cannot be interrupted.
func (e *Exporter) Export(ctx context.Context, path string, doc *document.Document) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := e.logger.With("path", path)
	log.Debug("exporting", "overwrite", e.overwrite)

	if !e.overwrite {
		exists, err := afero.Exists(e.fs, path)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", path, err)
		}
		if exists {
			log.Info("skipped", "reason", "destination exists")
			return &Result{Path: path, Skipped: true}, nil
		}
	}

	data, err := fbx.Marshal(e.version, doc.Roots)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", path, err)
	}
	
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.write(path, data); err != nil {
		return nil, err
	}

	res := &Result{
		Path:     path,
		Size:     len(data),
		Checksum: fmt.Sprintf("%016x", xxhash.Sum64(data)),
		FileID:   hex.EncodeToString(doc.FileID[:]),
	}
	log.Info("exported", "bytes", res.Size, "checksum", res.Checksum)

	if e.recorder != nil {
		if _, err := e.recorder.Record(ctx, journal.Entry{
			Path:      path,
			Size:      res.Size,
			Checksum:  res.Checksum,
			FileID:    res.FileID,
			Creator:   doc.Creator,
			CreatedAt: doc.CreatedAt,
		}); err != nil {
			return res, fmt.Errorf("journal %s: %w", path, err)
		}
	}
	return res, nil
}

// write puts data at path through a temporary sibling file.
func (e *Exporter) write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := e.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	tmp := path + tmpSuffix
	if err := afero.WriteFile(e.fs, tmp, data, 0o644); err != nil {
		_ = e.fs.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := e.fs.Rename(tmp, path); err != nil {
		_ = e.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

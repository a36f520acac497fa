package convert

import (
	"path/filepath"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/boostmark/cson"
)

// Config controls a conversion run.
type Config struct {
	InputDir  string
	OutputDir string
	// FolderMapPath points at Boostnote's boostnote.json. Empty means no
	// lookup: notes land in directories named after their raw folder key.
	FolderMapPath  string
	IncludeTrashed bool
}

// Summary counts the outcome of one run.
type Summary struct {
	Converted int
	Skipped   int
	Failed    int
}

// Converter walks a Boostnote notes directory and writes one markdown file
// per note. A note that fails to parse or render is logged and skipped;
// only batch-level problems (unreadable input, unwritable output) abort
// the run.
type Converter struct {
	cfg    Config
	fs     afero.Fs
	logger log.Logger
}

func New(cfg Config, fs afero.Fs, logger log.Logger) *Converter {
	return &Converter{
		cfg:    cfg,
		fs:     fs,
		logger: logger,
	}
}

func (c *Converter) Run() (Summary, error) {
	var folders *FolderMap
	if c.cfg.FolderMapPath != "" {
		var err error
		folders, err = LoadFolderMap(c.fs, c.cfg.FolderMapPath)
		if err != nil {
			return Summary{}, err
		}
	}

	entries, err := afero.ReadDir(c.fs, c.cfg.InputDir)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "reading notes directory %s", c.cfg.InputDir)
	}

	summary := Summary{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".cson") {
			continue
		}

		path := filepath.Join(c.cfg.InputDir, entry.Name())
		converted, err := c.convertFile(path, entry.Name(), folders)
		if err != nil {
			var batchErr *batchError
			if errors.As(err, &batchErr) {
				return summary, batchErr.err
			}
			level.Warn(c.logger).Log("msg", "skipping note", "file", path, "err", err)
			summary.Failed++
			continue
		}
		if !converted {
			summary.Skipped++
			continue
		}
		summary.Converted++
	}

	level.Info(c.logger).Log("msg", "conversion finished",
		"converted", summary.Converted, "skipped", summary.Skipped, "failed", summary.Failed)
	return summary, nil
}

// batchError marks failures of the shared output target rather than of one
// input file; these abort the whole run instead of being skipped.
type batchError struct {
	err error
}

func (e *batchError) Error() string {
	return e.err.Error()
}

func (c *Converter) convertFile(path, name string, folders *FolderMap) (bool, error) {
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return false, err
	}

	note := Note{}
	if err := cson.Unmarshal(data, &note); err != nil {
		return false, err
	}

	if note.IsTrashed && !c.cfg.IncludeTrashed {
		level.Debug(c.logger).Log("msg", "note is trashed", "file", path)
		return false, nil
	}
	if !note.IsMarkdown() {
		level.Debug(c.logger).Log("msg", "not a markdown note", "file", path, "type", note.Type)
		return false, nil
	}

	rendered, err := RenderMarkdown(&note, folders.Name(note.Folder))
	if err != nil {
		return false, err
	}

	outDir := filepath.Join(c.cfg.OutputDir, folders.Name(note.Folder))
	if err := c.fs.MkdirAll(outDir, 0o755); err != nil {
		return false, &batchError{errors.Wrapf(err, "creating output directory %s", outDir)}
	}

	outPath := filepath.Join(outDir, FileName(note.Title, strings.TrimSuffix(name, ".cson")))
	if err := afero.WriteFile(c.fs, outPath, rendered, 0o644); err != nil {
		return false, &batchError{errors.Wrapf(err, "writing %s", outPath)}
	}

	level.Debug(c.logger).Log("msg", "converted note", "file", path, "out", outPath)
	return true, nil
}

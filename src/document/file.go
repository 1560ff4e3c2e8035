package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/tanema/typify/src/typify"
)

// DefaultBackupFormat is the strftime pattern appended to backup file names.
const DefaultBackupFormat = "%Y%m%d%H%M%S"

// File is a document stored on disk. Edits are written atomically by writing
// a sibling temp file and renaming it over the original.
type File struct {
	Path string
	// Backup copies the original contents next to the file before it is
	// rewritten, named <path>.<BackupFormat>.bak.
	Backup       bool
	BackupFormat string
	// DryRun keeps the edited text in Preview instead of writing it.
	DryRun  bool
	Preview string

	now  func() time.Time
	text *string
}

// Open creates a document for the file at path.
func Open(path string) *File {
	return &File{Path: path, BackupFormat: DefaultBackupFormat, now: time.Now}
}

// Name is the path of the file.
func (f *File) Name() string { return f.Path }

// Text reads the file. The contents are read once and reused for the rest of
// the pass so that positions stay consistent with the planned edits.
func (f *File) Text() (string, error) {
	if f.text != nil {
		return *f.text, nil
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", err
	}
	text := string(data)
	f.text = &text
	return text, nil
}

// PositionAt converts a byte offset into a position.
func (f *File) PositionAt(offset int) typify.Position {
	text, _ := f.Text()
	return PositionAt(text, offset)
}

// ApplyEdits writes the edited text back to disk, or into Preview on a dry run.
func (f *File) ApplyEdits(ctx context.Context, edits []typify.TextEdit) error {
	text, err := f.Text()
	if err != nil {
		return err
	}
	updated, err := ApplyTextEdits(text, edits)
	if err != nil {
		return err
	} else if err := ctx.Err(); err != nil {
		return err
	}
	if f.DryRun {
		f.Preview = updated
		return nil
	}
	info, err := os.Stat(f.Path)
	if err != nil {
		return err
	}
	if f.Backup {
		if err := f.writeBackup(text, info.Mode().Perm()); err != nil {
			return err
		}
	}
	if err := writeAtomic(f.Path, []byte(updated), info.Mode().Perm()); err != nil {
		return err
	}
	f.text = &updated
	return nil
}

func (f *File) writeBackup(text string, perm os.FileMode) error {
	format := f.BackupFormat
	if format == "" {
		format = DefaultBackupFormat
	}
	strf, err := strftime.New(format)
	if err != nil {
		return fmt.Errorf("invalid backup format %q: %w", format, err)
	}
	now := f.now
	if now == nil {
		now = time.Now
	}
	path := fmt.Sprintf("%s.%s.bak", f.Path, strf.FormatString(now()))
	return os.WriteFile(path, []byte(text), perm)
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	} else if err := tmp.Close(); err != nil {
		return err
	} else if err := os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/strongroom-dev/strongroom/internal/model"
)

// File persists accounts to a single CSV file on disk.
type File struct {
	path string
}

// NewFile returns a store backed by the file at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Exists reports whether the backing file is present.
func (f *File) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Load reads every account from the file. A missing file is an error.
func (f *File) Load() ([]model.StoredAccount, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening accounts file: %w", err)
	}
	defer file.Close()

	accts, err := ReadAccounts(file)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", f.path, err)
	}
	return accts, nil
}

// Save overwrites the file with accounts. It writes to a sibling temp file
// and renames it into place so a failed write leaves the old file intact.
func (f *File) Save(accounts []model.StoredAccount) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp accounts file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := WriteAccounts(tmp, accounts); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing accounts: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("setting accounts file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp accounts file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing accounts file: %w", err)
	}
	return nil
}

// Create writes a new file with accounts and fails if one already exists.
func (f *File) Create(accounts []model.StoredAccount) error {
	if _, err := os.Stat(f.path); err == nil {
		return fmt.Errorf("accounts file %s: %w", f.path, fs.ErrExist)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking accounts file: %w", err)
	}
	return f.Save(accounts)
}

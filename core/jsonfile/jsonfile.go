package jsonfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"site-settings/core/jsontree"

	"github.com/spf13/afero"
)

var (
	// ErrInvalidJSON is returned when content does not parse as JSON.
	ErrInvalidJSON = jsontree.ErrInvalid
	// ErrUnreadable is returned when a file cannot be read.
	ErrUnreadable = errors.New("file unreadable")
	// ErrUnwritable is returned when a file or its parent directory cannot be written.
	ErrUnwritable = errors.New("file unwritable")
)

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
)

// Read returns the raw content of a JSON file after checking that it parses.
func Read(fs afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if _, err := jsontree.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// ReadTree reads and parses a JSON file.
func ReadTree(fs afero.Fs, path string) (*jsontree.Value, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	v, err := jsontree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Pretty validates content and returns it indented with two spaces.
func Pretty(content []byte) ([]byte, error) {
	v, err := jsontree.Parse(content)
	if err != nil {
		return nil, err
	}
	return jsontree.MarshalIndent(v)
}

// Write validates content and stores it pretty-printed at path.
func Write(fs afero.Fs, path string, content []byte) error {
	formatted, err := Pretty(content)
	if err != nil {
		return err
	}
	return WriteRaw(fs, path, formatted)
}

// WriteTree stores a parsed document pretty-printed at path.
func WriteTree(fs afero.Fs, path string, v *jsontree.Value) error {
	formatted, err := jsontree.MarshalIndent(v)
	if err != nil {
		return err
	}
	return WriteRaw(fs, path, formatted)
}

// WriteRaw stores data at path as-is, creating parent directories.
func WriteRaw(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("%w: create directory: %v", ErrUnwritable, err)
	}
	if err := afero.WriteFile(fs, path, data, filePerm); err != nil {
		return fmt.Errorf("%w: %v", ErrUnwritable, err)
	}
	return nil
}

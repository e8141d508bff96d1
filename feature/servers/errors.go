package servers

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidName is returned for names that cannot be used as a folder name.
	ErrInvalidName = errors.New("invalid server name")
	// ErrNotFound is returned when the server folder does not exist.
	ErrNotFound = errors.New("server not found")
	// ErrSourceMissing is returned when the copy source does not exist.
	ErrSourceMissing = errors.New("source server missing")
	// ErrTargetExists is returned when the create or copy target already exists.
	ErrTargetExists = errors.New("target server already exists")
	// ErrRenameFailed is returned when a soft delete cannot rename the folder.
	ErrRenameFailed = errors.New("rename failed")
)

const deletedMarker = ".deleted."

// ValidateName checks that name is usable as a single folder name.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return ErrInvalidName
	case name == "." || name == "..":
		return ErrInvalidName
	case strings.ContainsAny(name, `/\`):
		return ErrInvalidName
	case strings.HasSuffix(strings.ToLower(name), ".json"):
		return ErrInvalidName
	case strings.Contains(name, deletedMarker):
		return ErrInvalidName
	}
	return nil
}

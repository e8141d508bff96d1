package snapshot

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Extension is the file suffix of a snapshot.
const Extension = ".json"

var (
	// ErrNoSnapshots is returned when a server folder holds no JSON files.
	ErrNoSnapshots = errors.New("no snapshots found")
	// ErrUnreadable is returned when a server folder cannot be listed.
	ErrUnreadable = errors.New("directory unreadable")
)

// Info describes the current snapshot of a server.
type Info struct {
	// Path is the full path of the newest snapshot.
	Path string `json:"path"`
	// File is the base name of the newest snapshot.
	File string `json:"file"`
	// Date is the embedded date as YYYY-MM-DD, empty when the name has none.
	Date string `json:"date"`
	// Count is the number of snapshots in the folder.
	Count int `json:"count"`
}

// Less reports whether snapshot a sorts before b (a is newer).
// Dates compare descending with undated names last; equal dates compare
// the full names descending.
func Less(a, b string) bool {
	ka, kb := sortKey(a), sortKey(b)
	if ka != kb {
		return ka > kb
	}
	return a > b
}

// Sort orders snapshot names newest first, in place.
func Sort(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return Less(names[i], names[j])
	})
}

// IsSnapshot reports whether a file name looks like a snapshot.
// The extension match is case-sensitive: `config.JSON` is not a snapshot.
func IsSnapshot(name string) bool {
	return strings.HasSuffix(name, Extension)
}

// List returns the snapshot file names of a server folder, newest first.
func List(fs afero.Fs, folder string) ([]string, error) {
	entries, err := afero.ReadDir(fs, folder)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, folder, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsSnapshot(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	Sort(names)
	return names, nil
}

// Latest returns the newest snapshot of a server folder.
func Latest(fs afero.Fs, folder string) (*Info, error) {
	names, err := List(fs, folder)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSnapshots, folder)
	}

	info := &Info{
		Path:  filepath.Join(folder, names[0]),
		File:  names[0],
		Count: len(names),
	}
	if d, ok := ExtractDate(names[0]); ok {
		info.Date = NormalizeDate(d)
	}
	return info, nil
}

package checks

import (
	"errors"
	"path/filepath"

	"site-settings/core/jsonfile"
	"site-settings/core/snapshot"

	"github.com/spf13/afero"
)

// CheckSnapshots inspects the snapshot history of each server folder under root.
func CheckSnapshots(fs afero.Fs, root string, servers []string) []Issue {
	var issues []Issue
	for _, name := range servers {
		folder := filepath.Join(root, name)
		names, err := snapshot.List(fs, folder)
		if err != nil {
			issues = append(issues, Issue{Problem: ProblemUnreadable, Server: name, Detail: err.Error()})
			continue
		}
		if len(names) == 0 {
			issues = append(issues, Issue{Problem: ProblemNoSnapshots, Server: name})
			continue
		}

		for _, file := range names {
			issues = append(issues, checkFile(fs, folder, name, file)...)
		}
	}
	return issues
}

func checkFile(fs afero.Fs, folder, server, file string) []Issue {
	var issues []Issue

	// Undated snapshots sort last and never count as the latest.
	if _, ok := snapshot.ExtractDate(file); !ok {
		issues = append(issues, Issue{Problem: ProblemUndated, Server: server, File: file})
	}

	if _, err := jsonfile.Read(fs, filepath.Join(folder, file)); err != nil {
		problem := ProblemUnreadable
		if errors.Is(err, jsonfile.ErrInvalidJSON) {
			problem = ProblemInvalidJSON
		}
		issues = append(issues, Issue{Problem: problem, Server: server, File: file, Detail: err.Error()})
	}
	return issues
}

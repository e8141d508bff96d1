// Package jsonfile reads and writes JSON documents on an afero filesystem.
//
// Reads validate the content before returning it. Writes validate, pretty-print
// with two-space indentation (keeping key order) and create missing parent
// directories.
package jsonfile

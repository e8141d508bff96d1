// Package archive backs up server folders to object storage.
//
// A server folder is packed as a gzip-compressed tarball under
// `<name>/<name>_<YYYYMMDD_HHMMSS>.tar.gz` in the configured bucket.
// Archives can be listed, restored into a server folder that does not exist
// yet, and pruned to the newest N.
//
// # Endpoints
//
//   - POST   /archive/:name           upload the folder
//   - GET    /archive/:name           list archives, newest first
//   - POST   /archive/:name/restore   restore {"key": ...}
//   - DELETE /archive/:name?keep=N    prune old archives
package archive

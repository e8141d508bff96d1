// Package servers implements the configuration lifecycle of servers.
//
// A server is a folder under the servers root holding an append-only history of
// dated JSON snapshots (see core/snapshot). The Service creates, saves, copies and
// soft-deletes these histories, and reads them back (list, snapshots, latest).
// Every call re-reads the disk; nothing is cached between calls.
//
// # Lifecycle
//
//   - Create: new folder seeded with the resolved template (or the built-in one).
//   - Save: validate and write a new snapshot named for today; same-day saves get a
//     time suffix so nothing is overwritten. Differences to the previous snapshot are
//     appended to the server's change log.
//   - Copy: clone every file into a new server, rewriting the old name inside JSON
//     string values and file names. A failed copy removes the partial target.
//   - Delete: rename the folder to `<name>.deleted.<timestamp>`.
//
// # HTTP Endpoints
//
//   - GET    /servers                  : List servers.
//   - POST   /servers                  : Create a server ({"name", "use_template"}).
//   - GET    /servers/:name/snapshots  : Snapshot file names, newest first.
//   - GET    /servers/:name/latest     : Latest snapshot content and metadata.
//   - POST   /servers/:name/config     : Save a new snapshot (raw JSON body).
//   - POST   /servers/:name/copy       : Copy to {"target"}.
//   - DELETE /servers/:name            : Soft delete.
//   - GET    /servers/:name/changelog  : Change log text.
//   - GET    /servers/:name/missing    : Template keys missing from the latest snapshot.
//   - POST   /json/read, /json/write   : Raw validated JSON file access.
package servers

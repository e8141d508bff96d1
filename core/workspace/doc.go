// Package workspace resolves where configuration lives on disk.
//
// The configuration root is the shared network location when it can be reached
// (created if needed), otherwise a per-user local directory. Template tiers live
// in this root and, unless overridden, so do the server folders.
//
// Resolution is exposed through the RootProvider interface so services receive it
// at construction time and tests can substitute a fixed directory.
//
// # Usage
//
//	r := workspace.NewResolver(afero.NewOsFs(), cfg.Workspace, logg)
//	root := r.ConfigRoot()
package workspace

// Package config provides configuration management for Site Settings.
//
// Values come from environment variables, optionally loaded from a .env file,
// with defaults declared on the struct tags of each partial configuration.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and body limit
//   - Workspace: network and local configuration directories, servers root, template names
//   - Database: optional MySQL audit trail
//   - Storage: optional S3/MinIO archive bucket
//   - Log: logging level and format
//
// Nested keys map to upper-case variables joined by underscores, so
// workspace.root_dir is read from WORKSPACE_ROOT_DIR.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Workspace.RootDir)
package config

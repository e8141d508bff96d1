package workspace

// Config holds configuration for locating the shared configuration root.
type Config struct {
	// NetworkPath is the shared (team) location tried first, e.g. a mounted share.
	NetworkPath string `mapstructure:"network_path" default:""`
	// LocalDir is the per-user fallback. Empty means <home>/sitesettings.
	LocalDir string `mapstructure:"local_dir" default:""`
	// RootDir overrides the directory holding server folders. Empty means the resolved root.
	RootDir string `mapstructure:"root_dir" default:""`
	// PersonalTemplate is the file name of the per-user template.
	PersonalTemplate string `mapstructure:"personal_template" default:"template.json"`
	// SharedTemplate is the file name of the team-wide default template.
	SharedTemplate string `mapstructure:"shared_template" default:"default_template.json"`
}

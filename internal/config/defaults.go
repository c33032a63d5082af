package config

const (
	defaultLogDir            = "~/.local/share/perch/logs"
	defaultStateDir          = "~/.local/share/perch/state"
	defaultConflictPolicy    = "rename"
	defaultLayout            = "mirror"
	defaultFreeSpaceFloorMiB = 256
	defaultHistoryRetention  = 90
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		Organize: Organize{
			ConflictPolicy:    defaultConflictPolicy,
			Layout:            defaultLayout,
			Sidecars:          true,
			VerifyCopies:      false,
			PreserveModTime:   true,
			FreeSpaceFloorMiB: defaultFreeSpaceFloorMiB,
		},
		Search: Search{
			FollowSymlinks: false,
			IncludeDeleted: false,
		},
		Sidecar: Sidecar{
			MergeExisting: true,
			CaptureDates:  true,
		},
		History: History{
			Enabled:       true,
			RetentionDays: defaultHistoryRetention,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

const (
	defaultAudiotracksDir = "~/.local/share/crosstalk/audiotracks"
	defaultOutputDir      = "~/.local/share/crosstalk/output"
	defaultLogDir         = "~/.local/share/crosstalk/logs"
	defaultHistoryPath    = "~/.local/share/crosstalk/history.db"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AudiotracksDir: defaultAudiotracksDir,
			OutputDir:      defaultOutputDir,
			LogDir:         defaultLogDir,
		},
		Render: Render{
			WriteSpeakerTracks: true,
			WriteMix:           true,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

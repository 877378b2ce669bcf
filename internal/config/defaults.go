package config

const (
	defaultAudioDir         = "~/.local/share/inkwell/audio"
	defaultTranscriptDir    = "~/.local/share/inkwell/transcripts"
	defaultTranscriberModel = "large-v3"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AudioDir:      defaultAudioDir,
			TranscriptDir: defaultTranscriptDir,
		},
		Transcriber: Transcriber{
			Model: defaultTranscriberModel,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

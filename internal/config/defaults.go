package config

const (
	defaultWorkDir             = "~/.local/share/sublign/work"
	defaultLogDir              = "~/.local/share/sublign/logs"
	defaultHistoryDB           = "~/.local/share/sublign/history.db"
	defaultSampleRate          = 16000
	defaultHopLength           = 512
	defaultFFTSize             = 2048
	defaultMelBands            = 40
	defaultCoefficients        = 13
	defaultMaxTranscodeSeconds = 1500
	defaultMarginSeconds       = 12.0
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultNotifyTimeout       = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:   defaultWorkDir,
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Audio: Audio{
			SampleRate:          defaultSampleRate,
			HopLength:           defaultHopLength,
			FFTSize:             defaultFFTSize,
			MelBands:            defaultMelBands,
			Coefficients:        defaultCoefficients,
			MaxTranscodeSeconds: defaultMaxTranscodeSeconds,
		},
		Sync: Sync{
			MarginSeconds: defaultMarginSeconds,
			Safe:          true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

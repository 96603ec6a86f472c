package config

const (
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultEventPollMaxWaitMS = 25000
	defaultEventBufferSize    = 1024
)

// Default returns a Config populated with repository defaults. Path fields
// left empty are filled in during normalization.
func Default() Config {
	return Config{
		Workflow: Workflow{
			EventPollMaxWaitMS: defaultEventPollMaxWaitMS,
			EventBufferSize:    defaultEventBufferSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

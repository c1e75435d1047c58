package log

type Config struct {
	// Level is one of debug, info, warn, error.
	Level string `conf:"level" yaml:"level" json:"level"`
	// Format is one of console, json.
	Format string `conf:"format" yaml:"format" json:"format"`
	Color  bool   `conf:"color"  yaml:"color"  json:"color"`
}

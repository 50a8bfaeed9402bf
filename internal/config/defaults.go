package config

const (
	defaultLogDir          = "~/.local/share/tagtree/logs"
	defaultLedgerPath      = "~/.local/share/tagtree/history.db"
	defaultOutputExtension = ".png"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults. The defaults
// reproduce the historical behavior of the original organizer script: every
// destination file gets a .png extension and collisions overwrite silently.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Organize: Organize{
			OutputExtension:   defaultOutputExtension,
			OverwriteExisting: true,
			VerifyCopies:      false,
		},
		Ledger: Ledger{
			Enabled: false,
			Path:    defaultLedgerPath,
		},
		Logging: Logging{
			Format:  defaultLogFormat,
			Level:   defaultLogLevel,
			Outputs: []string{"file"},
		},
	}
}

// Package config loads and validates the TOML configuration for tagtree.
//
// Configuration is entirely optional: with no file present the defaults
// reproduce the tool's historical behavior (.png output extension, silent
// overwrite, no run ledger). A file at ~/.config/tagtree/config.toml, a
// tagtree.toml in the working directory, or an explicit --config path can
// adjust the output extension, overwrite policy, copy verification, ledger,
// and logging.
package config

package config

// Version is the accounting binary version.
// Set at build time via: -ldflags "-X github.com/vsuet/accounting/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"

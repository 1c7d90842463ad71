package version

// Version is overridden at build time with
// -ldflags "-X go-mood-analyzer/internal/version.Version=...".
var Version = "1.0.0"

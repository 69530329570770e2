package version

// Version is overridden at build time with -ldflags "-X pwmscan/internal/version.Version=...".
var Version = "dev"

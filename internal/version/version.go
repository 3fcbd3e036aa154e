package version

// AppName is the display name used in logs and embed footers.
const AppName = "D-Radio"

// Version is overridden at build time via -ldflags.
var Version = "dev"

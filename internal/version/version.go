package version

// Name identifies the service in telemetry and logs.
const Name = "workshop-api"

// Version is overridden at build time via -ldflags.
var Version = "dev"

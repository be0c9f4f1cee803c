package config

// Version is the version of the client, set at build time via ldflags.
var Version = "0.1.0"

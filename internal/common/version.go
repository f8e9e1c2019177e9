package common

// Set at build time with -ldflags "-X tarediiran-industries.com/rail-dss/internal/common.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
)

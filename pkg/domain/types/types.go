package types

// AppName is the canonical application name used in logs and documents
const AppName = "delivlib"

// Version is the tool version embedded in synthesized definitions
const Version = "0.3.1"

// DefaultGitHost is the hosted-Git host assumed when none is configured
const DefaultGitHost = "github.com"

// DefaultBranch is the branch pipelines track when none is configured
const DefaultBranch = "main"

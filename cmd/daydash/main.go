package main

import "daydash/cmd/daydash/root"

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root.Execute(version, commit, date)
}

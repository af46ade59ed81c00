package models

import "time"

// FileSummary reports one written target file.
type FileSummary struct {
	Path   string // Output path as written
	Groups int    // Number of target groups in the file
}

// RunSummary aggregates diagnostic counts for one source run.
type RunSummary struct {
	Source      string        // Source name (e.g., "ookla", "ec2-reachability")
	Candidates  int           // Records extracted before normalization
	IPv4Groups  int           // Groups written to the IPv4 variant
	IPv6Groups  int           // Groups written to the IPv6 variant
	Files       []FileSummary // Every file written by the run
	RunDuration time.Duration // Total duration of the run
}

package models

// ReachabilityRow is one data row extracted from a reachability page panel,
// combined with the heading context in effect when the row was seen.
type ReachabilityRow struct {
	Area    string // Panel title (e.g., "Asia Pacific")
	Region  string // Region identifier from the first column (e.g., "ap-northeast-1")
	City    string // From the preceding heading row
	Country string // From the preceding heading row; empty when the heading had no comma
	Address string // Literal test address from the third column
}

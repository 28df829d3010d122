// Package summary reduces extracted results into per-club participation
// counts.
package summary

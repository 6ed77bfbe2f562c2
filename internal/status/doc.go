// Package status parses the line-oriented working tree snapshot produced by
// git status --porcelain into typed change records.
package status

// Package classify turns parsed status lines into a precise partition of
// files to stage versus files to exclude.
//
// It resolves repository-relative paths into display paths anchored either at
// the working directory or at the repository top level, expands
// directory-shaped status entries into per-file entries, and applies the
// include/exclude decision rules that merge explicit user tokens with
// auto-ignore patterns.
package classify

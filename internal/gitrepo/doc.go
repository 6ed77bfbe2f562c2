// Package gitrepo wraps the git operations gitacp performs against a single
// repository: locating it, reading its porcelain status, and running the
// stage, commit, and push sequence.
package gitrepo

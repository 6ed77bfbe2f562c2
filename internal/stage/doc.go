// Package stage implements the staging pipeline behind the gitacp command:
// it reads the repository status, expands directory entries, classifies every
// file as added or excluded, presents the partition, and runs the stage,
// commit, and push sequence unless a preview mode is active.
package stage

// Package vcs initialises a git repository in a freshly generated project and
// records its first commit. Every git invocation runs with its output
// discarded; callers decide whether a failure matters.
package vcs

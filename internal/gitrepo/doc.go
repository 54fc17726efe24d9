// Package gitrepo contains helpers for interrogating Git repositories.
//
// It parses remote URLs into structured owner and repository components and
// exposes RemoteResolver for reading the origin remote of the working
// directory, which backs repository context resolution when the GitHub CLI
// cannot supply it.
package gitrepo

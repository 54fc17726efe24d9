// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with lifecycle logging via ShellExecutor, exposes
// OSCommandRunner for default process execution, and defines abstractions used
// throughout repoenv to run git and gh in a testable manner.
package execshell

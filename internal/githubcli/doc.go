// Package githubcli wraps the GitHub CLI with typed operations.
//
// Client translates provisioning needs into gh invocations executed through
// execshell, covering repository context resolution, authentication checks,
// deployment environment upserts, and Actions variable updates.
package githubcli

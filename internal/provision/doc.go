// Package provision implements the environment provisioning workflow.
//
// It resolves project parameters from explicit input or repository context,
// loads the ordered environment catalog, renders a confirmation summary, and
// drives environment upserts plus variable seeding through the GitHub CLI
// client. The workflow is linear and stateless; re-running it with identical
// inputs is safe because environment creation is idempotent and variable
// updates overwrite.
package provision

// Package workspace manages staging directories for publish operations,
// supporting both ephemeral (timestamped) and persistent (fixed-path) modes.
//
// Ephemeral mode creates timestamped directories (e.g., stylepub-20260828-122336)
// suitable for one-shot publishes, cleaning up completely after use.
//
// Persistent mode uses a fixed directory path (e.g., .stylepub/staging) that
// persists across runs, letting the daemon reuse the hosting-branch checkout.
package workspace

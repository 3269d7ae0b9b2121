// Package history persists a record of timeline generation runs in a SQLite
// database so past verdicts and outputs can be inspected from the CLI.
package history

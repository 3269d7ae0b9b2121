// Package generator orchestrates a full generation run: load a timing file,
// build and validate the timeline against the configured audio track
// directory, render outputs for accepted layouts, and record the run in the
// history store.
package generator

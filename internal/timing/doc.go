// Package timing models the ordered speaking turns of a conversation and their
// plain-text persistence.
//
// A timing file holds one turn per line as "speaker track offset", where the
// offset is a signed delay in milliseconds measured from the end of the
// previous turn (or from the timeline origin for the first turn). The format
// round-trips losslessly, including repeated identical turns, so generated
// setups can be saved, edited by hand, and reloaded.
package timing

// Package render writes a validated timeline out as audio: one near-end WAV
// per speaker with that speaker's turns at their absolute positions, plus a
// single mix of the whole conversation.
package render

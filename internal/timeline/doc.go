// Package timeline places conversational speaking turns on an absolute sample
// axis and decides whether the resulting layout is physically plausible.
//
// Each turn starts at the previous turn's end plus its signed offset. A layout
// is rejected when the first turn would start before the origin, when a turn
// starts earlier than its predecessor, when two turns by the same speaker
// overlap, or when more than two turns are active at once. Rejection is a
// normal outcome reported through Timeline.Valid, not an error; errors are
// reserved for track resolution failures.
//
// The builder owns one audio reader per distinct track name, shared by every
// turn that references the name.
package timeline

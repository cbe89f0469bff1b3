// Package analysis drives an engine through the F0, spectral envelope and
// aperiodicity stages of one signal.
//
// A Session moves through the states
//
//	Empty -> Loaded -> F0Ready | F0Discarded
//
// and ends in Released. The spectral stages read the F0 contour retained by
// ExtractF0, so they require F0Ready. Buffers shared with the engine live in
// a session-owned arena that Release hands back to a pool; every value
// returned to the caller is a copy and outlives the session.
//
// A Session is not safe for concurrent use. Separate sessions share nothing
// mutable and may run in parallel against the same engine.
package analysis

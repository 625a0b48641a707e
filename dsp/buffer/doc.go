// Package buffer provides the multi-channel audio container and the
// scratch-memory pool used by the measurement components.
//
// A [Buffer] has a channel count and per-channel length fixed at
// construction plus a sample-rate tag. A [Block] is a single transient
// working slice taken from a [Pool] for the duration of one call and
// returned before the call finishes.
package buffer

// Package window generates half-window tapers and applies them as fade-in
// and fade-out ramps to sample buffers.
package window

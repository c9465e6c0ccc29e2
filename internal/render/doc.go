// Package render dispatches one photon per pixel across row bands and packs
// the classified outcomes into a 32-bit ARGB buffer.
package render

// Package camera maps screen coordinates to world-space rays.
//
// [Orbit] is owned by whoever handles input and is passed by reference into
// the renderer for the duration of a frame, during which it is only read.
package camera

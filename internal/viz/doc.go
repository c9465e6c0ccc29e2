// Package viz provides the terminal front end for the tracer.
//
//   - [Viewer]: interactive Bubble Tea program that renders frames as
//     half-block pixels and owns an orbit camera
//   - [Canvas] and [Plot]: braille dot grid for projected photon paths
//   - [Theme]: UI colors paired with a render palette
//
// # Key Bindings
//
//	←→ h l    orbit
//	↑↓ k j    pitch
//	+ -       zoom
//	w s a d   pan, r f up/down
//	T         cycle themes
//	G         toggle GIF recording
//	P         save a snapshot to the run store
//	?         help overlay
package viz

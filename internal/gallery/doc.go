// Package gallery is the terminal front end: a loading screen, a grid of
// pattern cards with live braille previews, and a detail view whose two
// sliders re-parameterize the open pattern.
//
// The bubbletea program drives the event loop: every FrameMsg drains
// posted tasks and ticks the loop once, so all host calls happen on the
// program goroutine.
package gallery

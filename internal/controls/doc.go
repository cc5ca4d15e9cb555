// Package controls implements orbit camera controls for the detail view.
package controls

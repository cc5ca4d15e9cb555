// Package metrics measures per-session frame cost.
package metrics

// Package automation plays scripted tours and parameter sweeps against a
// host, ticking the event loop itself.
package automation

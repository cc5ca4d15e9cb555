// Package stream serves gallery patterns to websocket clients as braille
// text frames, and accepts mount and slider messages back.
package stream

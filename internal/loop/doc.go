// Package loop provides the single-threaded event loop that hosts every
// visualization session.
//
// It plays the role of a browser main thread: a task queue, frame
// requests honoured once per tick and resize notifications. Code that
// touches host state from another goroutine must go through Post or Call.
package loop

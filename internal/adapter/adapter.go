// Package adapter selects and abstracts the runtime the add-on is served
// from: a long-running HTTP listener or a single-invocation Lambda
// function.
package adapter

// Adapter represents a runtime adapter for the add-on server
type Adapter interface {
	// Start begins the adapter's runtime execution
	Start()
}

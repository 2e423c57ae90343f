package graphql

// Operation couples a query document with the path of keys leading
// from "data" to the payload callers care about.
type Operation struct {
	Query string
	Path  []string
}

// Table maps operation names to their definitions.
type Table map[string]Operation

// Params are the variables sent with a query.
type Params map[string]any

// Copyright (c) 2026 the libsfta authors
//
// MIT License

package mtbdd

// configs stores the values of the different sizing parameters of an engine.
type configs struct {
	nodesize        int // initial number of slots in the node table
	maxnodesize     int // maximum total number of nodes (0 if no limit)
	maxnodeincrease int // maximum number of nodes added at each resize (0 if no limit)
}

func makeconfigs(varnum int) *configs {
	c := &configs{}
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	// enough room for a small diagram over all the variables plus a few leaves
	c.nodesize = 2*varnum + 2
	return c
}

// Option is a configuration option used as an extra parameter in New.
type Option func(*configs)

// Nodesize is a configuration option (function). Used as a parameter in New
// it sets a preferred initial size for the node table. The table grows during
// computation; a size close to the expected number of live nodes avoids
// repeated resizing. Typical values are 10 000 slots for small examples and
// up to 1 000 000 for large ones.
func Nodesize(size int) Option {
	return func(c *configs) {
		if size > c.nodesize {
			c.nodesize = size
		}
	}
}

// Maxnodesize is a configuration option (function). Used as a parameter in
// New it sets a limit to the number of nodes in the table. An operation
// trying to raise the number of nodes above this limit fails with an error.
// The default value (0) means that there is no limit, in which case
// allocation can panic if all available memory is exhausted.
func Maxnodesize(size int) Option {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease is a configuration option (function). Used as a parameter
// in New it sets a limit on the increase in size of the node table. Below
// this limit we double the size of the table each time we need to resize it.
// The default value is about a million nodes. Set the value to zero to avoid
// imposing a limit.
func Maxnodeincrease(size int) Option {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

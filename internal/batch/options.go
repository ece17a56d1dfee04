package batch

// Options contains all batch parameters.
type Options struct {
	Inputs []string // Datetime strings, resolved independently
	Jobs   int      // Maximum concurrent resolutions
}

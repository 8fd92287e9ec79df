package pgerror

// Hint returns the server-supplied suggestion for resolving the error, if any.
func (d Descriptor) Hint() string { return d.hint }

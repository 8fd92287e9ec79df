package pgerror

// Detail returns the server-supplied secondary detail message, if any.
func (d Descriptor) Detail() string { return d.detail }

package pgerror

// Source identifies the point in the server's own source code that raised
// the error, when the server was built with that information enabled.
type Source struct {
	File    string
	Line    int32
	Routine string
}

// Source returns the server-side source location of the error.
func (d Descriptor) Source() Source {
	return Source{File: d.sourceFile, Line: d.sourceLine, Routine: d.sourceRoutine}
}

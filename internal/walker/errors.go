package walker

// StartupError is a fatal setup-time failure: the starting directory
// does not exist, isn't a directory, or can't be canonicalised. Per
// spec.md §7 this is the one error class the walker surfaces instead of
// skipping.
type StartupError struct {
	Path string
	Err  error
}

func (e *StartupError) Error() string {
	return "gitnuke: " + e.Path + ": " + e.Err.Error()
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// CompileError wraps a failure to read or compile a .gitignore/.gitnuke
// file that does exist (as opposed to simply being absent, which is not
// an error at all). Per spec.md §7 this is logged and the file is
// treated as absent; it never aborts the walk.
type CompileError struct {
	Path string
	Err  error
}

func (e *CompileError) Error() string {
	return "gitnuke: compile " + e.Path + ": " + e.Err.Error()
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// EntryError wraps a per-entry I/O failure during enumeration or
// metadata lookup. Per spec.md §7 this skips just the one entry and
// never aborts the walk.
type EntryError struct {
	Path string
	Err  error
}

func (e *EntryError) Error() string {
	return "gitnuke: " + e.Path + ": " + e.Err.Error()
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

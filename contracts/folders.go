package contracts

// InputEntry is a file discovered on disk for conversion.
// RelDir is the directory relative to the root argument it was found under,
// so batch output can mirror the input layout.
type InputEntry struct {
	Path   string
	RelDir string
	Size   int64
}

type InputFolder struct {
	Name      string
	Path      string
	Entries   []InputEntry
	FilesSize int64
}

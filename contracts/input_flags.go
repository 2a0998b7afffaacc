package contracts

type InputFlags struct {
	Target    string
	OutputDir string
	Workers   int
	Overwrite bool
	Recursive bool
}

package mergeindex

// Config holds configration for the mergeindex tool
type Config struct {
	// OutputFile is the name of the file to write
	OutputFile string
	// InputFiles are the index files to merge, in precedence order.
	InputFiles []string
}

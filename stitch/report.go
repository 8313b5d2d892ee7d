package stitch

// Report represents splice counters
type Report struct {
	Documents         int `yaml:"documents"`
	Diagnostics       int `yaml:"diagnostics"`
	Assets            int `yaml:"assets"`            // distinct assets written
	DuplicateAssets   int `yaml:"duplicateAssets"`   // assets skipped as already written
	ConflictingAssets int `yaml:"conflictingAssets"` // duplicates whose content differed
}

// Entries returns the number of archive entries written, site metadata included
func (r Report) Entries() int {
	return 1 + r.Documents + r.Diagnostics + r.Assets
}

package artifacts

import "io/fs"

// DataFile exposes embedded artifact bytes to tests so they can build
// mutated bundles.
func DataFile(name string) ([]byte, error) {
	return fs.ReadFile(dataFS, "data/"+name)
}

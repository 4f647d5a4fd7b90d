package transform

// Coordinate is a supplementary archive that is merged into a jar
type Coordinate struct {
	Name    string
	Version string
	// Path is the local archive
	Path string
}

// Key is "name-version". Transform ids are built from it
func (c Coordinate) Key() string {
	return c.Name + "-" + c.Version
}

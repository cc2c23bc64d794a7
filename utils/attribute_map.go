package utils

// AttributeMap is a loosely typed configuration map, as decoded from JSON.
type AttributeMap map[string]interface{}

// Has reports whether name is present.
func (am AttributeMap) Has(name string) bool {
	_, has := am[name]
	return has
}


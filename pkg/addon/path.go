package addon

// ExtraValue is one key/value pair appended to a resource URL, used for
// filters and pagination hints. Order is preserved end to end.
type ExtraValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ResourcePath is the parsed form of an incoming resource request.
type ResourcePath struct {
	Resource string
	Type     string
	ID       string
	Extra    []ExtraValue
}

// ExtraValue returns the value of the first extra with the given name.
func (p ResourcePath) ExtraValue(name string) (string, bool) {
	for _, e := range p.Extra {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

package domain

// WorkAttribute is a key/value pair attached to a worklog. For dynamic
// attributes Value holds a JSON pointer into the issue fields until resolved.
type WorkAttribute struct {
	Key             string
	Name            string
	WorkAttributeID int64
	Value           string
}

// CloneAttributes returns a copy of attrs that shares no backing array.
func CloneAttributes(attrs []WorkAttribute) []WorkAttribute {
	if attrs == nil {
		return nil
	}
	out := make([]WorkAttribute, len(attrs))
	copy(out, attrs)
	return out
}

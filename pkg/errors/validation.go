package errors

// CheckLength validates that an input array has exactly the expected number
// of entries. The name identifies the offending array in the error message.
//
// All attribute algorithms call this before any computation proceeds, so a
// shape mismatch never produces a partial result.
func CheckLength(name string, got, want int) error {
	if got != want {
		return New(ErrCodeInvalidShape, "%s has %d entries, want %d", name, got, want)
	}
	return nil
}

// CheckAttributeName validates a user-supplied attribute name.
// Names must be non-empty, lowercase ASCII identifiers so they can be used
// directly as document keys and cache key components.
func CheckAttributeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidAttribute, "attribute name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidAttribute, "attribute name too long (max 64 characters)")
	}
	for _, r := range name {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
		if !valid {
			return New(ErrCodeInvalidAttribute, "invalid attribute name %q: must be lowercase letters, digits, or underscores", name)
		}
	}
	return nil
}

package snapshot

// WriteValue persists an arbitrary value as pretty-printed JSON with the
// same atomic replace semantics as Write. Used by batches whose output is
// not the company collection, e.g. raw organization records.
func WriteValue(path string, v any) error {
	return writeJSON(path, v)
}

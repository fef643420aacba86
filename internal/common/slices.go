package common

// Names maps each element of s through name.
func Names[S ~[]E, E any](s S, name func(E) string) []string {
	out := make([]string, 0, len(s))
	for _, e := range s {
		out = append(out, name(e))
	}

	return out
}

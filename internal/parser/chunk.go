
package parser

// Chunk splits s into consecutive groups of n. A trailing group shorter
// than n is dropped, so 10 cells in groups of 3 give 3 groups.
func Chunk[T any](s []T, n int) [][]T {
	if n <= 0 {
		return nil
	}
	out := make([][]T, 0, len(s)/n)
	for i := 0; i+n <= len(s); i += n {
		out = append(out, s[i:i+n:i+n])
	}
	return out
}

// Column picks element idx out of every group.
func Column[T any](groups [][]T, idx int) []T {
	out := make([]T, 0, len(groups))
	for _, g := range groups {
		if idx < len(g) {
			out = append(out, g[idx])
		}
	}
	return out
}

package utils

// FindLastIndex returns the index of the last occurrence of item, or -1.
func FindLastIndex[T comparable](slice []T, item T) int {
	for i := len(slice) - 1; i >= 0; i-- {
		if slice[i] == item {
			return i
		}
	}
	return -1
}

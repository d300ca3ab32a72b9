package config

import "strings"

// resolve returns the last non-nil layer value, or def when every layer
// leaves the setting unset.
func resolve[T any](def T, values ...*T) T {
	out := def
	for _, v := range values {
		if v != nil {
			out = *v
		}
	}
	return out
}

// resolveList replaces a list wholesale. An explicitly empty layer clears
// it; lists are never merged element by element since their order matters.
func resolveList[T any](def []T, values ...*[]T) []T {
	out := append([]T(nil), def...)
	for _, v := range values {
		if v != nil {
			out = append(make([]T, 0, len(*v)), (*v)...)
		}
	}
	return out
}

func resolveTrimmed(def string, values ...*string) string {
	return strings.TrimSpace(resolve(def, values...))
}

// Package attrs reads values back out of slog-style argument lists so the
// audit helpers can reuse the attributes they just logged.
package attrs

import "log/slog"

// ExtractString returns the string value stored under key. args is a flat
// key, value list that may also contain slog.Attr entries. Missing keys and
// non-string values yield "".
func ExtractString(args []any, key string) string {
	for i := 0; i < len(args); i++ {
		switch k := args[i].(type) {
		case slog.Attr:
			if k.Key == key && k.Value.Kind() == slog.KindString {
				return k.Value.String()
			}
		case string:
			if i+1 >= len(args) {
				return ""
			}
			if v, ok := args[i+1].(string); ok && k == key {
				return v
			}
			i++
		}
	}
	return ""
}

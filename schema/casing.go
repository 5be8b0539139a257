package schema

import "strings"

// SnakeCase converts an UpperCamelCase identifier to snake_case by
// inserting '_' before every non-leading, non-trailing uppercase letter,
// then lowercasing — the exact transform required by §4.1 step 2 for
// defaulting a table name from its aggregate's Go type name.
func SnakeCase(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		isUpper := r >= 'A' && r <= 'Z'
		if isUpper && i > 0 && i < len(runes)-1 {
			b.WriteByte('_')
		}
		if isUpper {
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UpperCamelCase converts a snake_case or already-camel identifier to
// UpperCamelCase, used to name the members of the per-entity column
// enumeration §4.1 requires the derivation step to emit.
func UpperCamelCase(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

package unrealgen

import "strings"

// toPascalCase converts a schema-cased identifier, with words separated by
// underscores, to PascalCase: the first character and the first character of
// each underscore-delimited segment are upper-cased and every other character
// is lower-cased. Lower-casing non-leading characters is a deliberate policy
// so that input that is already mixed-case or upper-case ("HTTP_CODE",
// "HTTPCode") produces predictable output.
func toPascalCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	nextUpper := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			nextUpper = true
			continue
		}
		if nextUpper {
			b.WriteByte(asciiUpper(c))
			nextUpper = false
		} else {
			b.WriteByte(asciiLower(c))
		}
	}
	return b.String()
}

func asciiUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func asciiLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

// accessorName is the name of the C++ accessor generated by protoc for the
// given field name (the field name, lower-cased).
func accessorName(name string) string {
	return strings.ToLower(name)
}

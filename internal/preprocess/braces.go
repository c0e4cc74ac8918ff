package preprocess

// MatchBraced returns the index of the closing brace matching the opening
// brace at s[open], counting nested braces. Escaped braces (\{ and \}) do not
// affect the depth. Returns -1 when the group is unterminated or s[open] is
// not an opening brace.
func MatchBraced(s string, open int) int {
	if open < 0 || open >= len(s) || s[open] != '{' {
		return -1
	}
	depth := 0
	for i := open; i < len(s); i++ {
		if i > 0 && s[i-1] == '\\' {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// skipSpaces returns the first index at or after i that is not a space,
// tab, or newline.
func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	return i
}

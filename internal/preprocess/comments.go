package preprocess

// SplitComment splits a line into code and trailing comment. The comment
// starts at the first % not preceded by a backslash and runs to end of line;
// it is empty when the line has no comment. Line-oriented rewrites operate on
// the code part only and re-append the comment unchanged, so LaTeX comments
// are never rewritten.
func SplitComment(line string) (code, comment string) {
	for i := 0; i < len(line); i++ {
		if line[i] != '%' {
			continue
		}
		if i > 0 && line[i-1] == '\\' {
			continue
		}
		return line[:i], line[i:]
	}
	return line, ""
}

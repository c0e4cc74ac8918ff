package preprocess

import "strings"

// FlattenFrameboxes rewrites every \framebox{\parbox{<width>}{<body>}} into a
// quote block containing <body> verbatim. Bodies may span multiple lines and
// contain nested braces; matching is done by brace-depth counting, not
// pattern matching. Applied once to the whole document before line splitting.
func FlattenFrameboxes(content string) string {
	const marker = `\framebox{`

	var out strings.Builder
	rest := content
	for {
		idx := strings.Index(rest, marker)
		if idx == -1 {
			out.WriteString(rest)
			return out.String()
		}

		frameOpen := idx + len(marker) - 1
		frameClose := MatchBraced(rest, frameOpen)
		body, ok := parboxBody(rest, frameOpen, frameClose)
		if !ok {
			// Not the framebox{parbox{...}{...}} shape; leave it alone.
			out.WriteString(rest[:frameOpen+1])
			rest = rest[frameOpen+1:]
			continue
		}

		out.WriteString(rest[:idx])
		out.WriteString("\\begin{quote}\n" + body + "\n\\end{quote}")
		rest = rest[frameClose+1:]
	}
}

// parboxBody extracts the body of a \parbox{<width>}{<body>} group occupying
// the framebox argument delimited by frameOpen/frameClose.
func parboxBody(s string, frameOpen, frameClose int) (string, bool) {
	if frameClose < 0 {
		return "", false
	}

	inner := skipSpaces(s, frameOpen+1)
	const parbox = `\parbox`
	if !strings.HasPrefix(s[inner:], parbox) {
		return "", false
	}

	widthOpen := skipSpaces(s, inner+len(parbox))
	widthClose := MatchBraced(s, widthOpen)
	if widthClose < 0 || widthClose >= frameClose {
		return "", false
	}

	bodyOpen := skipSpaces(s, widthClose+1)
	bodyClose := MatchBraced(s, bodyOpen)
	if bodyClose < 0 || bodyClose >= frameClose {
		return "", false
	}

	// Nothing but whitespace may remain before the framebox closes.
	if skipSpaces(s, bodyClose+1) != frameClose {
		return "", false
	}

	return s[bodyOpen+1 : bodyClose], true
}

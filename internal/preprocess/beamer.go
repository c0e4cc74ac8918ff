package preprocess

import (
	"regexp"
	"strings"
)

var (
	documentClassPattern = regexp.MustCompile(`\\documentclass(?:\[[^\]]*\])?\{beamer\}`)
	structurePattern     = regexp.MustCompile(`\\(?:include|input|chapter|section)\{[^}]+\}`)

	frameBeginPattern = regexp.MustCompile(`\\begin\{frame\}(?:\[[^\]]*\])?(?:\{([^}]*)\})?`)
	frameEndPattern   = regexp.MustCompile(`\\end\{frame\}`)
	frametitlePattern = regexp.MustCompile(`\\frametitle\{([^}]*)\}`)
)

// IsBeamer reports whether the document declares the beamer document class.
func IsBeamer(content string) bool {
	return documentClassPattern.MatchString(content)
}

// HasStructure reports whether the document carries multi-file or sectioning
// markers (\include, \input, \chapter, \section), which select the
// multi-page site build.
func HasStructure(content string) bool {
	return structurePattern.MatchString(content)
}

// FlattenFrames converts beamer frame environments into section headings so
// a slideshow renderer can infer slide boundaries from heading level. A
// frame's inline title ({...} after \begin{frame}) wins over a later
// \frametitle; at most one heading is emitted per frame. Frame markup tokens
// are stripped, and lines left blank by the stripping are dropped.
func FlattenFrames(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	inFrame := false
	titleEmitted := false

	for _, line := range lines {
		code, comment := SplitComment(line)
		stripped := code

		if m := frameBeginPattern.FindStringSubmatch(stripped); m != nil {
			inFrame = true
			titleEmitted = false
			if m[1] != "" {
				out = append(out, `\section{`+m[1]+`}`)
				titleEmitted = true
			}
			stripped = frameBeginPattern.ReplaceAllString(stripped, "")
		}

		if inFrame {
			if m := frametitlePattern.FindStringSubmatch(stripped); m != nil {
				if !titleEmitted && m[1] != "" {
					out = append(out, `\section{`+m[1]+`}`)
					titleEmitted = true
				}
				stripped = frametitlePattern.ReplaceAllString(stripped, "")
			}
		}

		if frameEndPattern.MatchString(stripped) {
			inFrame = false
			titleEmitted = false
			stripped = frameEndPattern.ReplaceAllString(stripped, "")
		}

		if stripped != code && strings.TrimSpace(stripped+comment) == "" {
			continue
		}
		out = append(out, stripped+comment)
	}

	return strings.Join(out, "\n")
}

package tex2web

import "errors"

// Sentinel errors for library operations.
var (
	ErrInputNotFound  = errors.New("LaTeX file not found")
	ErrEmptyDocument  = errors.New("LaTeX file is empty")
	ErrConvertFailed  = errors.New("pandoc conversion failed")
	ErrSiteBuild      = errors.New("site build failed")
	ErrMissingTools   = errors.New("required external tools not found")
	ErrNoSourcesFound = errors.New("no LaTeX sources found")
)

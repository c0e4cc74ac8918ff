package tex2web

// Output formats produced by the pipeline.
const (
	FormatDocument  = "document"  // standalone HTML page
	FormatSlideshow = "slideshow" // slidy presentation
	FormatSite      = "site"      // multi-page generated site
)

// ConvertOptions tunes a single conversion.
type ConvertOptions struct {
	// RequireDiagramTools makes a missing TeX toolchain a hard failure
	// instead of a warn-and-skip. Batch callers leave this false so one
	// un-renderable diagram toolchain does not sink a whole archive;
	// standalone conversions set it to surface the problem immediately.
	RequireDiagramTools bool
}

// Result describes a finished conversion.
type Result struct {
	OutputPath string   // HTML file, or site root directory for FormatSite
	Format     string   // FormatDocument, FormatSlideshow, or FormatSite
	Images     []string // diagram artifacts copied next to the output
	Warnings   []string // non-fatal diagnostics accumulated along the way
}

// Option configures a Service.
type Option func(*Service)

// WithSiteTitle sets the title of generated multi-page sites.
func WithSiteTitle(title string) Option {
	return func(s *Service) {
		if title != "" {
			s.site.Title = title
		}
	}
}

// WithSiteTheme sets the theme of generated multi-page sites.
func WithSiteTheme(theme string) Option {
	return func(s *Service) {
		if theme != "" {
			s.site.Theme = theme
		}
	}
}

package layout

// Option configures a Paginator.
type Option func(*Paginator)

// WithGeometry sets the page size and margins.
func WithGeometry(g Geometry) Option {
	return func(p *Paginator) {
		p.geom = g
	}
}

// WithMetrics sets the font metrics used to measure text.
// The metrics must match the fonts the consumer will draw with, otherwise
// wrapped lines may overflow their boxes.
func WithMetrics(metrics FontMetrics) Option {
	return func(p *Paginator) {
		if metrics != nil {
			p.metrics = metrics
		}
	}
}

// WithTheme sets colors and font sizes.
func WithTheme(t Theme) Option {
	return func(p *Paginator) {
		p.theme = t
	}
}

// WithLabels sets the printed labels. Empty fields keep their defaults.
func WithLabels(l Labels) Option {
	return func(p *Paginator) {
		p.labels = l.Merge(DefaultLabels())
	}
}

// WithGenerator sets the generator text printed in every footer.
func WithGenerator(generator string) Option {
	return func(p *Paginator) {
		p.generator = generator
	}
}

// WithBreakBeforeSuggestions starts the suggestion cards on a new page.
func WithBreakBeforeSuggestions(enabled bool) Option {
	return func(p *Paginator) {
		p.breakBeforeSuggestions = enabled
	}
}

package layout

// Cursor tracks the vertical write position during one render.
// It is owned by a single render call and never shared.
type Cursor struct {
	geom Geometry
	page int
	y    float64
}

// NewCursor returns a cursor at the top of the first page.
func NewCursor(geom Geometry) *Cursor {
	return &Cursor{geom: geom, y: geom.MarginTop}
}

// Page returns the current 0-based page index.
func (c *Cursor) Page() int { return c.page }

// Y returns the current vertical position.
func (c *Cursor) Y() float64 { return c.y }

// Pages returns the number of pages started so far.
func (c *Cursor) Pages() int { return c.page + 1 }

// AtTop reports whether nothing has been placed on the current page yet.
func (c *Cursor) AtTop() bool { return c.y <= c.geom.MarginTop }

// Remaining returns the space left above the bottom margin.
func (c *Cursor) Remaining() float64 { return c.geom.ContentBottom() - c.y }

// Reserve reports whether a block of height h fits on the current page
// without breaking. It does not move the cursor.
func (c *Cursor) Reserve(h float64) bool {
	return c.y+h <= c.geom.ContentBottom()
}

// Break starts a new page.
func (c *Cursor) Break() {
	c.page++
	c.y = c.geom.MarginTop
}

// Fit breaks the page when a block of height h does not fit and the page
// already holds content. A block taller than a whole page therefore starts
// at the top of a fresh page and overflows the bottom margin instead of
// breaking forever. It returns true when a break happened.
func (c *Cursor) Fit(h float64) bool {
	if c.Reserve(h) || c.AtTop() {
		return false
	}
	c.Break()
	return true
}

// Advance moves the cursor down by h, breaking first when h does not fit.
func (c *Cursor) Advance(h float64) {
	c.Fit(h)
	c.y += h
}

// Gap adds vertical spacing. Spacing that would cross the bottom margin
// fills the page instead, so the next block starts a new page without
// leftover space and a trailing gap never creates an empty page.
func (c *Cursor) Gap(h float64) {
	if c.AtTop() {
		return
	}
	if !c.Reserve(h) {
		c.y = max(c.y, c.geom.ContentBottom())
		return
	}
	c.y += h
}

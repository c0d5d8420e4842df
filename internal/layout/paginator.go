package layout

import (
	"strconv"

	"github.com/nao1215/seoreport/internal/model"
)

// Section names, in the order the paginator lays them out.
const (
	SectionCover          = "cover"
	SectionSiteInfo       = "site-info"
	SectionOverallScore   = "overall-score"
	SectionCategoryScores = "category-scores"
	SectionCriticalIssues = "critical-issues"
	SectionSuggestion     = "suggestion"
	SectionQuickWins      = "quick-wins"
	SectionFooter         = "footer"
)

// Footer placement inside the bottom margin.
const (
	footerRuleOffset = 3.0
	footerTextOffset = 2.0
	cardGap          = 4.0
)

// Paginator lays a report out on fixed-size pages.
//
// A Paginator holds only configuration. Every Render call owns its own
// cursor and instruction list, so one Paginator may render many reports
// from different goroutines at once.
type Paginator struct {
	geom                   Geometry
	metrics                FontMetrics
	theme                  Theme
	labels                 Labels
	generator              string
	breakBeforeSuggestions bool
}

// New creates a Paginator with A4 geometry, Helvetica metrics, the default
// theme and English labels, then applies opts.
func New(opts ...Option) *Paginator {
	p := &Paginator{
		geom:    DefaultGeometry(),
		metrics: HelveticaMetrics{},
		theme:   DefaultTheme(),
		labels:  DefaultLabels(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Geometry returns the page geometry the paginator lays out on.
func (p *Paginator) Geometry() Geometry {
	return p.geom
}

// Render lays out r and returns the draw instructions of every page.
//
// Sections are rendered in a fixed order. Each block is measured first,
// then placed: when it does not fit the rest of the page the cursor breaks
// before anything is drawn, so keep-together blocks never straddle a page
// boundary. A block taller than a whole usable page starts on a fresh page
// and overflows the bottom margin. Footers are added in a second pass once
// the page count is known.
//
// Any failure aborts the render and no partial result is returned.
func (p *Paginator) Render(r *model.Report) (*Result, error) {
	if err := p.geom.Validate(); err != nil {
		return nil, err
	}
	if err := p.theme.validate(); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	rs := &renderState{
		p:      p,
		report: r,
		cursor: NewCursor(p.geom),
		br: &blockRenderer{
			m:      NewMeasurer(p.metrics),
			theme:  p.theme,
			labels: p.labels,
			x:      p.geom.MarginLeft,
			width:  p.geom.UsableWidth(),
		},
	}

	sections := []struct {
		name string
		fn   func() error
	}{
		{SectionCover, rs.cover},
		{SectionSiteInfo, rs.siteInfo},
		{SectionOverallScore, rs.overallScore},
		{SectionCategoryScores, rs.categoryScores},
		{SectionCriticalIssues, rs.criticalIssues},
		{SectionSuggestion, rs.suggestions},
		{SectionQuickWins, rs.quickWins},
	}
	for _, s := range sections {
		if err := s.fn(); err != nil {
			return nil, inSection(s.name, err)
		}
	}
	return rs.finish(), nil
}

// renderState is the mutable state of one render call.
type renderState struct {
	p      *Paginator
	report *model.Report
	cursor *Cursor
	br     *blockRenderer
	out    []Instruction
	block  int
}

// place reserves the block's full height, breaking the page first when it
// does not fit, then emits it at the cursor and advances.
func (rs *renderState) place(section string, b block) {
	rs.cursor.Fit(b.height)
	page := rs.cursor.Page()
	for _, in := range b.draw(rs.cursor.Y()) {
		in.Page = page
		in.Section = section
		in.Block = rs.block
		rs.out = append(rs.out, in)
	}
	rs.block++
	rs.cursor.Advance(b.height)
}

func (rs *renderState) cover() error {
	b, err := rs.br.banner()
	if err != nil {
		return err
	}
	rs.place(SectionCover, b)
	rs.cursor.Gap(blockGap)
	return nil
}

func (rs *renderState) siteInfo() error {
	b, err := rs.br.siteInfo(rs.report)
	if err != nil {
		return err
	}
	rs.place(SectionSiteInfo, b)
	rs.cursor.Gap(blockGap)
	return nil
}

func (rs *renderState) overallScore() error {
	heading, err := rs.br.heading(rs.p.labels.OverallScore)
	if err != nil {
		return err
	}
	badge, err := rs.br.scoreBadge(rs.report.OverallScore)
	if err != nil {
		return err
	}
	rs.place(SectionOverallScore, join(heading, badge))
	rs.cursor.Gap(blockGap)
	return nil
}

// categoryScores lays out the Category | Score | bar table.
func (rs *renderState) categoryScores() error {
	heading, err := rs.br.heading(rs.p.labels.CategoryScores)
	if err != nil {
		return err
	}

	rows := make([][]string, len(rs.report.Scores))
	for i, c := range rs.report.Scores {
		rows[i] = []string{c.Name, strconv.Itoa(c.Score), ""}
	}
	tl, err := rs.br.m.LayoutTable(Table{
		Header: []string{rs.p.labels.Category, rs.p.labels.Score, ""},
		Rows:   rows,
		Columns: []Column{
			{Width: 5, Align: AlignLeft},
			{Width: 1.5, Align: AlignCenter},
			{Width: 3.5, Align: AlignLeft},
		},
		Policy:     PolicyProportional,
		Font:       Font{Size: rs.p.theme.BodySize},
		HeaderFont: Font{Size: rs.p.theme.BodySize, Bold: true},
	}, rs.br.width)
	if err != nil {
		return err
	}

	rs.placeTable(SectionCategoryScores, heading, tl, func(row, col int) (RGB, bool) {
		if col == 1 {
			return rs.p.theme.ScoreColor(rs.report.Scores[row].Score), true
		}
		return rs.p.theme.Text, false
	}, func(i int, y, h float64) []Instruction {
		return rs.scoreBar(tl, rs.report.Scores[i].Score, y, h)
	})
	rs.cursor.Gap(blockGap)
	return nil
}

// scoreBar draws the progress bar in the last column of a score row.
func (rs *renderState) scoreBar(tl *TableLayout, score int, rowY, rowH float64) []Instruction {
	col := len(tl.Widths) - 1
	x := rs.br.x + tl.Offsets[col] + tl.Padding
	w := tl.Widths[col] - 2*tl.Padding
	y := rowY + (rowH-barHeight)/2
	out := []Instruction{{
		Kind: KindFilledRect,
		X:    x,
		Y:    y,
		W:    w,
		H:    barHeight,
		Fill: rs.p.theme.Border,
	}}
	if filled := w * float64(model.ClampScore(score)) / model.MaxScore; filled > 0 {
		out = append(out, Instruction{
			Kind: KindFilledRect,
			X:    x,
			Y:    y,
			W:    filled,
			H:    barHeight,
			Fill: rs.p.theme.ScoreColor(score),
		})
	}
	return out
}

// placeTable places a measured table under its heading. A table that fits
// on one usable page is a single keep-together block. A taller table is
// split between rows: the heading, header and first row stay together and
// the header is repeated at the top of every continuation page.
func (rs *renderState) placeTable(section string, heading block, tl *TableLayout,
	style cellStyle, extras func(row int, y, h float64) []Instruction) {
	header := rs.tableRow(tl, tl.Header, tl.HeaderHeight, true, nil, nil)
	rows := make([]block, len(tl.Rows))
	for i := range tl.Rows {
		rowStyle := func(col int) (RGB, bool) { return style(i, col) }
		rows[i] = rs.tableRow(tl, tl.Rows[i], tl.RowHeights[i], false, rowStyle, func(y, h float64) []Instruction {
			return extras(i, y, h)
		})
	}

	if heading.height+tl.Height() <= rs.p.geom.UsableHeight() || len(rows) == 0 {
		rs.place(section, join(append([]block{heading, header}, rows...)...))
		return
	}

	rs.place(section, join(heading, header, rows[0]))
	for _, row := range rows[1:] {
		if rs.cursor.Reserve(row.height) {
			rs.place(section, row)
			continue
		}
		rs.cursor.Break()
		rs.place(section, join(header, row))
	}
}

// cellStyle returns the text color and weight of a body cell.
type cellStyle func(row, col int) (RGB, bool)

// tableRow builds the block of one table row. A nil lines slice yields an
// empty block, which is how a header-less table skips its header.
func (rs *renderState) tableRow(tl *TableLayout, lines [][]string, h float64, isHeader bool,
	style func(col int) (RGB, bool), extras func(y, h float64) []Instruction) block {
	if lines == nil {
		return spacer(0)
	}
	font, fill, bold := tl.Font, RGB{255, 255, 255}, false
	if isHeader {
		font, fill, bold = tl.HeaderFont, rs.p.theme.Surface, true
	}
	border := rs.p.theme.Border

	return block{
		height: h,
		draw: func(y float64) []Instruction {
			cells := make([]Cell, len(lines))
			for i := range lines {
				color, cellBold := rs.p.theme.Primary, bold
				if !isHeader {
					color, cellBold = style(i)
				}
				cells[i] = Cell{
					X:     rs.br.x + tl.Offsets[i],
					Width: tl.Widths[i],
					Lines: lines[i],
					Align: tl.Aligns[i],
					Color: color,
					Bold:  cellBold,
				}
			}
			out := []Instruction{{
				Kind:       KindTableRow,
				X:          rs.br.x,
				Y:          y,
				W:          tl.Width(),
				H:          h,
				Font:       font,
				Fill:       fill,
				Stroke:     &border,
				Header:     isHeader,
				Cells:      cells,
				Padding:    tl.Padding,
				LineHeight: font.LineHeight(),
			}}
			if extras != nil {
				out = append(out, extras(y, h)...)
			}
			return out
		},
	}
}

func (rs *renderState) criticalIssues() error {
	if !rs.report.HasCriticalIssues() {
		return nil
	}
	heading, err := rs.br.heading(rs.p.labels.CriticalIssues)
	if err != nil {
		return err
	}
	list, err := rs.br.numberedList(rs.report.CriticalIssues, model.SeverityCritical)
	if err != nil {
		return err
	}
	rs.place(SectionCriticalIssues, join(heading, list))
	rs.cursor.Gap(blockGap)
	return nil
}

// suggestions places one keep-together card per suggestion. The section
// heading travels with the first card.
func (rs *renderState) suggestions() error {
	if len(rs.report.Suggestions) == 0 {
		return nil
	}
	heading, err := rs.br.heading(rs.p.labels.Suggestions)
	if err != nil {
		return err
	}
	if rs.p.breakBeforeSuggestions && !rs.cursor.AtTop() {
		rs.cursor.Break()
	}
	for i, s := range rs.report.Suggestions {
		card, err := rs.br.suggestionCard(s)
		if err != nil {
			return err
		}
		if i == 0 {
			card = join(heading, card)
		} else {
			rs.cursor.Gap(cardGap)
		}
		rs.place(SectionSuggestion, card)
	}
	rs.cursor.Gap(blockGap)
	return nil
}

func (rs *renderState) quickWins() error {
	if !rs.report.HasQuickWins() {
		return nil
	}
	heading, err := rs.br.heading(rs.p.labels.QuickWins)
	if err != nil {
		return err
	}
	list, err := rs.br.numberedList(rs.report.QuickWins, model.SeverityGood)
	if err != nil {
		return err
	}
	rs.place(SectionQuickWins, join(heading, list))
	rs.cursor.Gap(blockGap)
	return nil
}

// finish runs the footer pass and assembles the result.
func (rs *renderState) finish() *Result {
	pages := rs.cursor.Pages()
	out := make([]Instruction, 0, len(rs.out)+pages*4)
	next := 0
	for page := range pages {
		for next < len(rs.out) && rs.out[next].Page == page {
			out = append(out, rs.out[next])
			next++
		}
		out = append(out, rs.footer(page, pages)...)
	}
	return &Result{Pages: pages, Instructions: out}
}

// footer returns the footer of one page: a separator line, the generator,
// the report date and the page counter.
func (rs *renderState) footer(page, pages int) []Instruction {
	geom := rs.p.geom
	font := Font{Size: rs.p.theme.SmallSize}
	ruleY := geom.ContentBottom() + footerRuleOffset
	textY := ruleY + footerTextOffset

	generator := rs.p.labels.Generator
	if rs.p.generator != "" {
		generator = rs.p.generator
	}
	text := func(s string, align Align) Instruction {
		return Instruction{
			Kind:  KindText,
			X:     geom.MarginLeft,
			Y:     textY,
			W:     geom.UsableWidth(),
			H:     font.LineHeight(),
			Text:  s,
			Font:  font,
			Color: rs.p.theme.Muted,
			Align: align,
		}
	}

	out := []Instruction{
		{
			Kind:      KindLine,
			X:         geom.MarginLeft,
			Y:         ruleY,
			X2:        geom.ContentRight(),
			Y2:        ruleY,
			Color:     rs.p.theme.Border,
			LineWidth: 0.3,
		},
		text(generator, AlignLeft),
		text(rs.report.Date, AlignCenter),
		text(rs.p.labels.PageNumber(page+1, pages), AlignRight),
	}
	for i := range out {
		out[i].Page = page
		out[i].Section = SectionFooter
		out[i].Block = rs.block
	}
	rs.block++
	return out
}

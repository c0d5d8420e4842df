package layout

import (
	"strconv"

	"github.com/nao1215/seoreport/internal/model"
)

// Spacing between and inside blocks, in millimetres.
const (
	blockGap     = 6.0
	boxPadding   = 4.0
	accentWidth  = 1.5
	headingRule  = 2.0
	paragraphGap = 1.5
	barHeight    = 3.0
	badgeWidth   = 40.0
	badgePadding = 2.0
	pillPadding  = 2.0
)

// block is one measured semantic unit. Height is known before anything is
// drawn; draw emits the instructions with their top edge at y.
type block struct {
	height float64
	draw   func(y float64) []Instruction
}

// join stacks blocks vertically into a single keep-together block.
func join(blocks ...block) block {
	h := 0.0
	for _, b := range blocks {
		h += b.height
	}
	return block{
		height: h,
		draw: func(y float64) []Instruction {
			var out []Instruction
			for _, b := range blocks {
				out = append(out, b.draw(y)...)
				y += b.height
			}
			return out
		},
	}
}

// blockRenderer turns report content into measured blocks. It holds only
// immutable configuration and is created once per render.
type blockRenderer struct {
	m      *Measurer
	theme  Theme
	labels Labels
	x      float64 // left edge of the content area
	width  float64 // usable width
}

// lines wraps text and returns one text instruction per line.
func (br *blockRenderer) lines(text string, font Font, color RGB, align Align, x, width float64) (block, error) {
	wrapped, err := br.m.Wrap(text, font, width)
	if err != nil {
		return block{}, err
	}
	lh := font.LineHeight()
	return block{
		height: float64(len(wrapped)) * lh,
		draw: func(y float64) []Instruction {
			out := make([]Instruction, 0, len(wrapped))
			for i, line := range wrapped {
				out = append(out, Instruction{
					Kind:  KindText,
					X:     x,
					Y:     y + float64(i)*lh,
					W:     width,
					H:     lh,
					Text:  line,
					Font:  font,
					Color: color,
					Align: align,
				})
			}
			return out
		},
	}, nil
}

// spacer is an empty block of height h.
func spacer(h float64) block {
	return block{height: h, draw: func(float64) []Instruction { return nil }}
}

// banner is the cover: a filled primary rectangle with the title and
// subtitle centered on it.
func (br *blockRenderer) banner() (block, error) {
	innerX, innerW := br.x+boxPadding, br.width-2*boxPadding
	title, err := br.lines(br.labels.Title, Font{Size: br.theme.TitleSize, Bold: true}, br.theme.OnFill, AlignCenter, innerX, innerW)
	if err != nil {
		return block{}, err
	}
	subtitle, err := br.lines(br.labels.Subtitle, Font{Size: br.theme.BodySize}, br.theme.OnFill, AlignCenter, innerX, innerW)
	if err != nil {
		return block{}, err
	}
	content := join(spacer(boxPadding), title, spacer(paragraphGap), subtitle, spacer(boxPadding))
	return br.box(content, br.theme.Primary, nil), nil
}

// box draws a filled rectangle behind content. A non-nil accent draws a
// bar of that color along the left edge.
func (br *blockRenderer) box(content block, fill RGB, accent *RGB) block {
	return block{
		height: content.height,
		draw: func(y float64) []Instruction {
			out := []Instruction{{
				Kind: KindFilledRect,
				X:    br.x,
				Y:    y,
				W:    br.width,
				H:    content.height,
				Fill: fill,
			}}
			if accent != nil {
				out = append(out, Instruction{
					Kind: KindFilledRect,
					X:    br.x,
					Y:    y,
					W:    accentWidth,
					H:    content.height,
					Fill: *accent,
				})
			}
			return append(out, content.draw(y)...)
		},
	}
}

// siteInfo is the tinted box listing site URL, keywords and date.
func (br *blockRenderer) siteInfo(r *model.Report) (block, error) {
	innerX := br.x + accentWidth + boxPadding
	innerW := br.width - accentWidth - 2*boxPadding
	font := Font{Size: br.theme.BodySize}

	entries := []string{br.labels.Site + ": " + r.SiteURL}
	if r.TargetKeywords != "" {
		entries = append(entries, br.labels.Keywords+": "+r.TargetKeywords)
	}
	entries = append(entries, br.labels.Date+": "+r.Date)

	parts := []block{spacer(boxPadding)}
	for i, entry := range entries {
		b, err := br.lines(entry, font, br.theme.Text, AlignLeft, innerX, innerW)
		if err != nil {
			return block{}, err
		}
		if i > 0 {
			parts = append(parts, spacer(paragraphGap))
		}
		parts = append(parts, b)
	}
	parts = append(parts, spacer(boxPadding))

	accent := br.theme.Primary
	return br.box(join(parts...), br.theme.Surface, &accent), nil
}

// heading is a section title followed by a thin rule.
func (br *blockRenderer) heading(text string) (block, error) {
	title, err := br.lines(text, Font{Size: br.theme.HeadingSize, Bold: true}, br.theme.Primary, AlignLeft, br.x, br.width)
	if err != nil {
		return block{}, err
	}
	rule := block{
		height: headingRule + paragraphGap,
		draw: func(y float64) []Instruction {
			ry := y + headingRule/2
			return []Instruction{{
				Kind:      KindLine,
				X:         br.x,
				Y:         ry,
				X2:        br.x + br.width,
				Y2:        ry,
				Color:     br.theme.Border,
				LineWidth: 0.3,
			}}
		},
	}
	return join(title, rule), nil
}

// scoreBadge is the severity-colored overall score with its caption.
func (br *blockRenderer) scoreBadge(score int) (block, error) {
	font := Font{Size: br.theme.BadgeSize, Bold: true}
	badgeH := font.LineHeight() + 2*badgePadding
	badgeX := br.x + (br.width-badgeWidth)/2
	fill := br.theme.ScoreColor(score)

	caption, err := br.lines(br.labels.OutOf, Font{Size: br.theme.SmallSize}, br.theme.Muted, AlignCenter, br.x, br.width)
	if err != nil {
		return block{}, err
	}
	badge := block{
		height: badgeH,
		draw: func(y float64) []Instruction {
			return []Instruction{
				{Kind: KindFilledRect, X: badgeX, Y: y, W: badgeWidth, H: badgeH, Fill: fill},
				{
					Kind:  KindText,
					X:     badgeX,
					Y:     y + badgePadding,
					W:     badgeWidth,
					H:     font.LineHeight(),
					Text:  strconv.Itoa(score),
					Font:  font,
					Color: br.theme.OnFill,
					Align: AlignCenter,
				},
			}
		},
	}
	return join(badge, spacer(paragraphGap), caption), nil
}

// numberedList is a tinted box of numbered items with hanging indents.
func (br *blockRenderer) numberedList(items []string, sev model.Severity) (block, error) {
	font := Font{Size: br.theme.BodySize}
	numW := br.m.Width(strconv.Itoa(len(items))+". ", font)
	innerX := br.x + accentWidth + boxPadding
	textX := innerX + numW
	textW := br.width - accentWidth - 2*boxPadding - numW

	parts := []block{spacer(boxPadding)}
	for i, item := range items {
		body, err := br.lines(item, font, br.theme.Text, AlignLeft, textX, textW)
		if err != nil {
			return block{}, err
		}
		number := strconv.Itoa(i+1) + "."
		entry := block{
			height: body.height,
			draw: func(y float64) []Instruction {
				num := Instruction{
					Kind:  KindText,
					X:     innerX,
					Y:     y,
					W:     numW,
					H:     font.LineHeight(),
					Text:  number,
					Font:  Font{Size: font.Size, Bold: true},
					Color: br.theme.Color(sev),
					Align: AlignLeft,
				}
				return append([]Instruction{num}, body.draw(y)...)
			},
		}
		if i > 0 {
			parts = append(parts, spacer(paragraphGap))
		}
		parts = append(parts, entry)
	}
	parts = append(parts, spacer(boxPadding))

	accent := br.theme.Color(sev)
	return br.box(join(parts...), br.theme.Tint(sev), &accent), nil
}

// suggestionCard is one keep-together suggestion: category and priority
// pill, title, description and impact on a priority-tinted background.
func (br *blockRenderer) suggestionCard(s model.Suggestion) (block, error) {
	sev := s.Severity()
	color := br.theme.Color(sev)
	innerX := br.x + accentWidth + boxPadding
	innerW := br.width - accentWidth - 2*boxPadding

	small := Font{Size: br.theme.SmallSize, Bold: true}
	label := br.labels.Priority(s.Priority)
	pillW := br.m.Width(label, small) + 2*pillPadding
	pillX := innerX + innerW - pillW

	categoryW := innerW - pillW - pillPadding
	if categoryW <= 0 {
		categoryW = innerW
	}
	category, err := br.lines(s.Category, small, br.theme.Muted, AlignLeft, innerX, categoryW)
	if err != nil {
		return block{}, err
	}
	pill := block{
		height: small.LineHeight(),
		draw: func(y float64) []Instruction {
			return []Instruction{
				{Kind: KindFilledRect, X: pillX, Y: y, W: pillW, H: small.LineHeight(), Fill: color},
				{
					Kind:  KindText,
					X:     pillX,
					Y:     y,
					W:     pillW,
					H:     small.LineHeight(),
					Text:  label,
					Font:  small,
					Color: br.theme.OnFill,
					Align: AlignCenter,
				},
			}
		},
	}
	header := block{
		height: max(category.height, pill.height),
		draw: func(y float64) []Instruction {
			return append(pill.draw(y), category.draw(y)...)
		},
	}

	title, err := br.lines(s.Title, Font{Size: br.theme.BodySize + 1, Bold: true}, br.theme.Text, AlignLeft, innerX, innerW)
	if err != nil {
		return block{}, err
	}
	description, err := br.lines(s.Description, Font{Size: br.theme.BodySize}, br.theme.Text, AlignLeft, innerX, innerW)
	if err != nil {
		return block{}, err
	}
	parts := []block{spacer(boxPadding), header, spacer(paragraphGap), title, spacer(paragraphGap), description}
	if s.Impact != "" {
		impact, err := br.lines(br.labels.Impact+": "+s.Impact, Font{Size: br.theme.SmallSize}, br.theme.Muted, AlignLeft, innerX, innerW)
		if err != nil {
			return block{}, err
		}
		parts = append(parts, spacer(paragraphGap), impact)
	}
	parts = append(parts, spacer(boxPadding))

	return br.box(join(parts...), br.theme.Tint(sev), &color), nil
}

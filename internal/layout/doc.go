// Package layout turns an SEO report into page-relative draw instructions.
//
// The package separates measurement from drawing. A Paginator walks the
// report sections in a fixed order, measures every block with a Measurer
// backed by FontMetrics, decides page breaks with a Cursor and emits plain
// Instruction values. It never rasterizes or writes bytes; PDF, JSON and
// other backends consume the Result.
//
// Layout rules:
//
//   - Keep-together blocks (suggestion cards, issue lists, the score table
//     when it fits on a page) are never split across pages.
//   - A block taller than a whole usable page starts on a fresh page and
//     overflows the bottom margin.
//   - Section headings stay on the same page as the first item below them.
//   - Footers are emitted in a second pass, once the page count is known.
//
// Rendering is deterministic: the same report, configuration and metrics
// always yield the same instructions, and Result.Fingerprint is stable.
package layout

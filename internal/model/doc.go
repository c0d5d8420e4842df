// Package model defines the report data consumed by the layout engine.
//
// This package contains the following main types:
//   - Report: The SEO analysis result for one site
//   - Suggestion: A single prioritized optimization suggestion
//   - CategoryScore: One entry of the ordered category score list
//   - Severity: The three-way Good/Warning/Critical bucket shared by scores and priorities
//
// Reports are produced by an external analysis step and are read-only once
// decoded. Decode and LoadFile accept both JSON and YAML; Normalize strips
// inline markup that upstream analysis output sometimes contains.
//
// The models are designed to be serializable to JSON and YAML so a report
// can be saved by the analysis step and rendered later.
package model

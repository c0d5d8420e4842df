// Package pipeline provides a framework for executing render steps in sequence.
//
// The pipeline pattern is used to process report files through multiple
// stages: loading, normalization, layout, and writing the output document.
// Each stage is implemented as a Step that receives the current job and can
// modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context between steps
//
// The pipeline supports both individual renders and batch processing with
// concurrency control using errgroup.
package pipeline

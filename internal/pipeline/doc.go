// Package pipeline provides a framework for executing scrape steps in
// sequence.
//
// The pipeline pattern is used to move a run through its stages: crawling
// or reading source documents, parsing them into profiles, and persisting
// the profiles to the configured sinks. Each stage is implemented as a Step
// that receives the current run and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running scrapes
//
// Execution is strictly sequential: one step at a time, one profile at a
// time inside a step. The directories being scraped are not built for
// crawler traffic, so politeness trumps throughput.
package pipeline

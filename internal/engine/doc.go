// Package engine implements the streaming row-to-triple pipeline.
//
// The engine drives a single synchronous, pull-based loop:
//
//  1. Read the next row from the input (blank rows are skipped upstream).
//  2. Build the row's variable binding.
//  3. Evaluate the CONSTRUCT query against the binding.
//  4. Union the resulting triples into the pending set (duplicates across
//     rows collapse).
//  5. Flush when the pending set exceeds the dedup window, or after every
//     productive row when no window is configured.
//
// A flush hands the pending triples to the emitter, which serializes them
// through the triple store and writes a trimmed chunk to the sink. On the
// block format the namespace prologue appears only in the first chunk, so
// the concatenated chunks read as one continuous document.
//
// After the row stream is exhausted, a final unconditional flush drains
// any partially filled window. Skipping it would silently drop the tail of
// the output.
//
// The window threshold is a strict greater-than: with a window of 2, a
// pending set of exactly 2 triples does not flush yet. Downstream
// consumers rely on this boundary; do not change it to >=.
//
// The loop is strictly single-threaded. The pending set, triple store, and
// emitter state are owned by one running pipeline; memory is bounded by
// the window size plus one row's evaluation result.
package engine

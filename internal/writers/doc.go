// Package writers turns per-sequence scan results into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (text scores, wig tracks, BED).
//   - The scanner stays domain-only; the pipeline stays orchestration-only.
//   - Emitters never close the file they write to; callers own file lifetime.
package writers

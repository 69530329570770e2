// Package pipeline streams sequence records through the window scorer on a
// fixed-size worker pool and hands each per-sequence result to the caller.
//
// The only contract to implement is Source; Job carries the read-only model.
// With more than one worker, results arrive in completion order, not input
// order. Callers that need input order must sort downstream.
package pipeline

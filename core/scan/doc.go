// Package scan is the window scorer: log-odds of a motif against the
// background on both strands of every window of one sequence. It is a pure
// function of its inputs and never imports pipeline, writers or app code.
package scan

package writers

import "strings"

var unsafeName = strings.NewReplacer("/", "_", "\\", "_", string(rune(0)), "_")

// ScoreTextPath is the text score file shared by every motif.
func ScoreTextPath(prefix string) string { return prefix + ".motif_scores.txt" }

// WigPath is the per-motif wig track. Path separators in the motif name are
// replaced so the file stays next to the prefix.
func WigPath(prefix, motif string) string { return prefix + "." + unsafeName.Replace(motif) + ".wig" }

// PredictionPath is the BED file shared by every motif.
func PredictionPath(prefix string) string { return prefix + ".motif_predictions.bed" }

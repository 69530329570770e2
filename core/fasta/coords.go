package fasta

import (
	"strconv"
	"strings"
)

// Coords places a record on a reference: Start is 0-based, End exclusive.
type Coords struct {
	Chrom string
	Start int
	End   int
}

// ParseCoords reads chrom, start and end from the first three
// whitespace-separated fields of the description. When they are missing or
// not integers it falls back to the whole record: Chrom=ID, Start=0,
// End=len(Seq); ok reports whether the description supplied them.
func ParseCoords(rec Record) (c Coords, ok bool) {
	f := strings.Fields(rec.Desc)
	if len(f) >= 3 {
		start, err1 := strconv.Atoi(f[1])
		end, err2 := strconv.Atoi(f[2])
		if err1 == nil && err2 == nil && start >= 0 && end >= start {
			return Coords{Chrom: f[0], Start: start, End: end}, true
		}
	}
	return Coords{Chrom: rec.ID, Start: 0, End: len(rec.Seq)}, false
}

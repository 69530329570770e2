package writers

import (
	"strconv"
	"strings"

	"pwmscan/core/scan"
)

// AppendScore appends v with exactly six fractional digits.
func AppendScore(dst []byte, v float64) []byte {
	return strconv.AppendFloat(dst, v, 'f', 6, 64)
}

// ScoresCSV joins scores with commas, six fractional digits each.
func ScoresCSV(a []float64) string {
	if len(a) == 0 {
		return ""
	}
	b := make([]byte, 0, len(a)*10)
	for i, v := range a {
		if i > 0 {
			b = append(b, ',')
		}
		b = AppendScore(b, v)
	}
	return string(b)
}

// FormatBEDRow returns the seven BED columns of m (no trailing newline).
// Local rows are placed on the record itself (chrom = sequence ID); genomic
// rows on the parsed chromosome, shifted by chromStart.
func FormatBEDRow(r scan.Result, m scan.Match, genomic bool) string {
	chrom, start, end := r.ID, m.Start, m.End
	if genomic {
		chrom = r.Coords.Chrom
		start += r.Coords.Start
		end += r.Coords.Start
	}
	return strings.Join([]string{
		chrom,
		strconv.Itoa(start),
		strconv.Itoa(end),
		r.ID,
		m.Motif,
		string(m.Strand),
		strconv.FormatFloat(m.Score, 'g', -1, 64),
	}, "\t")
}

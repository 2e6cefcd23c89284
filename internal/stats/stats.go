// Package stats computes the derived rating statistics exposed on catalog
// views: the critic average and the weighted user average. Both are
// optional values; "no data" is represented as a nil pointer and must never
// collapse to zero.
package stats

import "math"

// Round1 rounds v to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round1Ptr rounds a nullable value to one decimal place, preserving nil.
func Round1Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := Round1(*v)
	return &r
}

// CriticAverage is the arithmetic mean of the non-nil critic percentages,
// rounded to one decimal. It is nil when no release has a critic rating.
func CriticAverage(pcts []*float64) *float64 {
	var sum float64
	var n int
	for _, p := range pcts {
		if p == nil {
			continue
		}
		sum += *p
		n++
	}
	if n == 0 {
		return nil
	}
	avg := Round1(sum / float64(n))
	return &avg
}

// UserAverage is the weighted average user rating across releases:
// total rating points divided by total rater count, aggregated before
// division. It is nil when no release has any raters. Nil aggregates on
// individual releases contribute nothing; they are never treated as zero
// raters with a zero sum distorting a defined average.
func UserAverage(totals []*float64, counts []*int64) *float64 {
	var sum float64
	var n int64
	for i := range totals {
		if totals[i] == nil || i >= len(counts) || counts[i] == nil {
			continue
		}
		sum += *totals[i]
		n += *counts[i]
	}
	if n <= 0 {
		return nil
	}
	avg := Round1(sum / float64(n))
	return &avg
}

// ReleaseStats is the slice of one release relevant to aggregation.
type ReleaseStats struct {
	CriticPct         *float64
	TotalPlayerRating *float64
	NumPlayersRated   *int64
}

// Summarize computes both averages for a set of releases in one pass.
func Summarize(rows []ReleaseStats) (criticAvg, userAvg *float64) {
	pcts := make([]*float64, len(rows))
	totals := make([]*float64, len(rows))
	counts := make([]*int64, len(rows))
	for i, r := range rows {
		pcts[i] = r.CriticPct
		totals[i] = r.TotalPlayerRating
		counts[i] = r.NumPlayersRated
	}
	return CriticAverage(pcts), UserAverage(totals, counts)
}

// ReleaseAverage is the average user rating of a single release, nil when
// the release has no raters.
func ReleaseAverage(total *float64, count *int64) *float64 {
	if total == nil || count == nil || *count <= 0 {
		return nil
	}
	avg := Round1(*total / float64(*count))
	return &avg
}

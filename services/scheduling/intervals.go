package scheduling

import "sort"

// MinViableSlotMinutes is the narrowest interval worth offering; leftovers
// shorter than this after subtraction are discarded.
const MinViableSlotMinutes = 5

// MinuteRange is a half-open [Start, End) range of minutes on a shared axis
// (one local calendar day).
type MinuteRange struct {
	Start int
	End   int
}

// Width returns the range width in minutes.
func (r MinuteRange) Width() int {
	return r.End - r.Start
}

// Merge sorts the ranges and coalesces overlapping or touching ones. Empty
// ranges are dropped. The input slice is not modified.
func Merge(ranges []MinuteRange) []MinuteRange {
	var sorted []MinuteRange
	for _, r := range ranges {
		if r.Width() > 0 {
			sorted = append(sorted, r)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End < sorted[j].End
		}
		return sorted[i].Start < sorted[j].Start
	})

	var merged []MinuteRange
	for _, r := range sorted {
		if n := len(merged); n > 0 && r.Start <= merged[n-1].End {
			if r.End > merged[n-1].End {
				merged[n-1].End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Subtract removes every cut from every base range. A cut overlapping a base
// range splits it into at most two remaining pieces (before the cut, after
// the cut); ranges fully consumed by a cut vanish. Results narrower than
// minWidth are discarded. The result is sorted by start and does not depend
// on the order of the cuts.
func Subtract(base, cuts []MinuteRange, minWidth int) []MinuteRange {
	pieces := make([]MinuteRange, 0, len(base))
	for _, b := range base {
		if b.Width() > 0 {
			pieces = append(pieces, b)
		}
	}

	for _, cut := range cuts {
		if cut.Width() <= 0 {
			continue
		}
		next := make([]MinuteRange, 0, len(pieces))
		for _, p := range pieces {
			if cut.End <= p.Start || cut.Start >= p.End {
				next = append(next, p)
				continue
			}
			if cut.Start > p.Start {
				next = append(next, MinuteRange{Start: p.Start, End: cut.Start})
			}
			if cut.End < p.End {
				next = append(next, MinuteRange{Start: cut.End, End: p.End})
			}
		}
		pieces = next
	}

	result := make([]MinuteRange, 0, len(pieces))
	for _, p := range pieces {
		if p.Width() >= minWidth {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start < result[j].Start })
	return result
}

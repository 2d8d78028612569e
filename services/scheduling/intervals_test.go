package scheduling

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		input []MinuteRange
		want  []MinuteRange
	}{
		{
			name:  "empty input",
			input: nil,
			want:  nil,
		},
		{
			name:  "disjoint ranges stay separate",
			input: []MinuteRange{{600, 720}, {480, 540}},
			want:  []MinuteRange{{480, 540}, {600, 720}},
		},
		{
			name:  "overlapping ranges coalesce",
			input: []MinuteRange{{480, 600}, {540, 720}},
			want:  []MinuteRange{{480, 720}},
		},
		{
			name:  "touching ranges coalesce",
			input: []MinuteRange{{480, 540}, {540, 600}},
			want:  []MinuteRange{{480, 600}},
		},
		{
			name:  "contained range disappears",
			input: []MinuteRange{{480, 720}, {500, 520}},
			want:  []MinuteRange{{480, 720}},
		},
		{
			name:  "empty and inverted ranges dropped",
			input: []MinuteRange{{480, 480}, {600, 500}, {480, 540}},
			want:  []MinuteRange{{480, 540}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.input))
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name string
		base []MinuteRange
		cuts []MinuteRange
		want []MinuteRange
	}{
		{
			name: "no cuts",
			base: []MinuteRange{{480, 720}},
			cuts: nil,
			want: []MinuteRange{{480, 720}},
		},
		{
			name: "cut in the middle splits",
			base: []MinuteRange{{480, 720}},
			cuts: []MinuteRange{{540, 600}},
			want: []MinuteRange{{480, 540}, {600, 720}},
		},
		{
			name: "cut at the start trims",
			base: []MinuteRange{{480, 720}},
			cuts: []MinuteRange{{400, 540}},
			want: []MinuteRange{{540, 720}},
		},
		{
			name: "cut covering everything empties",
			base: []MinuteRange{{480, 720}},
			cuts: []MinuteRange{{0, 1440}},
			want: []MinuteRange{},
		},
		{
			name: "touching cut leaves base intact",
			base: []MinuteRange{{480, 720}},
			cuts: []MinuteRange{{720, 780}},
			want: []MinuteRange{{480, 720}},
		},
		{
			name: "leftover below minimum width discarded",
			base: []MinuteRange{{480, 720}},
			cuts: []MinuteRange{{483, 720}},
			want: []MinuteRange{},
		},
		{
			name: "multiple cuts across multiple bases",
			base: []MinuteRange{{480, 600}, {660, 780}},
			cuts: []MinuteRange{{500, 520}, {700, 900}},
			want: []MinuteRange{{480, 500}, {520, 600}, {660, 700}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subtract(tt.base, tt.cuts, MinViableSlotMinutes))
		})
	}
}

// The subtraction result must not depend on the order the cuts arrive in.
func TestSubtractCutOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		var base []MinuteRange
		for i := 0; i < 1+rng.Intn(3); i++ {
			start := rng.Intn(1200)
			base = append(base, MinuteRange{Start: start, End: start + 10 + rng.Intn(300)})
		}
		var cuts []MinuteRange
		for i := 0; i < rng.Intn(6); i++ {
			start := rng.Intn(1400)
			cuts = append(cuts, MinuteRange{Start: start, End: start + rng.Intn(200)})
		}

		want := Subtract(Merge(base), cuts, MinViableSlotMinutes)

		shuffled := make([]MinuteRange, len(cuts))
		copy(shuffled, cuts)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := Subtract(Merge(base), shuffled, MinViableSlotMinutes)

		require.Equal(t, want, got, "trial %d: cuts %v vs %v", trial, cuts, shuffled)

		// No surviving range may intersect any cut or be narrower than the minimum.
		for _, r := range got {
			require.GreaterOrEqual(t, r.Width(), MinViableSlotMinutes)
			for _, c := range cuts {
				if c.Width() <= 0 {
					continue
				}
				require.False(t, c.Start < r.End && r.Start < c.End,
					"trial %d: surviving range %v intersects cut %v", trial, r, c)
			}
		}
	}
}

package colour

import "slices"

// QuantizationContext carries the per-image pixel totals the pairing stage
// needs. Each extraction builds its own, so concurrent extractions never
// share state.
type QuantizationContext struct {
	colors []RGB
	counts map[RGB]int
	total  int
}

// NewQuantizationContext collects the colours and populations of a ColorMap.
// Entries that share a representative colour are merged, keeping the
// position of the first.
func NewQuantizationContext(cm ColorMap) QuantizationContext {
	qc := QuantizationContext{counts: make(map[RGB]int, cm.Len())}
	for _, e := range cm.Entries {
		if _, seen := qc.counts[e.Color]; !seen {
			qc.colors = append(qc.colors, e.Color)
		}
		qc.counts[e.Color] += e.Count
		qc.total += e.Count
	}
	return qc
}

// Colors returns the distinct colours in map order.
func (qc QuantizationContext) Colors() []RGB {
	return slices.Clone(qc.colors)
}

// Total returns the summed pixel count.
func (qc QuantizationContext) Total() int {
	return qc.total
}

// Dominance returns the share of all pixels represented by rgb.
func (qc QuantizationContext) Dominance(rgb RGB) float64 {
	if qc.total == 0 {
		return 0
	}
	return float64(qc.counts[rgb]) / float64(qc.total)
}

// Pairings returns the partners of dominant drawn from the context's
// colours, sorted by descending score.
func (qc QuantizationContext) Pairings(dominant RGB) []ColorDescriptor {
	var pairs []ColorDescriptor
	for _, candidate := range qc.colors {
		if d, ok := describePartner(dominant, candidate); ok {
			pairs = append(pairs, d)
		}
	}
	slices.SortStableFunc(pairs, func(a, b ColorDescriptor) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return pairs
}

// dominanceScore weighs a colour's pairing quality by its pixel share.
func (qc QuantizationContext) dominanceScore(dominant RGB, pairs []ColorDescriptor) float64 {
	if len(pairs) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range pairs {
		total += p.Score
	}
	return (float64(len(pairs)) + total) * qc.Dominance(dominant)
}

// SelectPalette picks an accessible palette from a ColorMap.
func SelectPalette(cm ColorMap) Palette {
	return SelectPaletteWithContext(NewQuantizationContext(cm))
}

// SelectPaletteWithContext picks the colour with the highest dominance score
// as background and its two best scoring partners as color and alternative.
// Missing partners fall back to the previous role, so a single-colour image
// gives the same colour three times and an empty context gives black.
func SelectPaletteWithContext(qc QuantizationContext) Palette {
	if len(qc.colors) == 0 {
		return Palette{}
	}

	var (
		background RGB
		partners   []ColorDescriptor
		highest    float64
		found      bool
	)
	for _, dominant := range qc.colors {
		pairs := qc.Pairings(dominant)
		if score := qc.dominanceScore(dominant, pairs); score > highest {
			highest = score
			background = dominant
			partners = pairs
			found = true
		}
	}

	// No colour has a distinct partner; use the most populous one alone.
	if !found {
		background = qc.colors[0]
		for _, c := range qc.colors[1:] {
			if qc.counts[c] > qc.counts[background] {
				background = c
			}
		}
	}

	p := Palette{BackgroundColor: background, Color: background, AlternativeColor: background}
	if len(partners) > 0 {
		p.Color = partners[0].Color
		p.AlternativeColor = p.Color
	}
	if len(partners) > 1 {
		p.AlternativeColor = partners[1].Color
	}
	return p
}

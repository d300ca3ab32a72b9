// Package lexctx answers whether a buffer position sits inside a comment or
// a string literal.
package lexctx

import (
	"sort"

	"github.com/phyten/todomark/internal/model"
)

// Oracle classifies buffer positions. Offsets are rune indices.
type Oracle interface {
	InsideCommentOrString(offset int) bool
	TextLike() bool
}

// Region is a half-open rune range [Start, End) of annotation-bearing text.
type Region struct {
	Start int
	End   int
	Kind  model.MatchKind
}

// Regions is sorted by Start and non-overlapping.
type Regions []Region

// Find returns the region containing off.
func (rs Regions) Find(off int) (Region, bool) {
	idx := sort.Search(len(rs), func(i int) bool { return rs[i].End > off })
	if idx < len(rs) && rs[idx].Start <= off && off < rs[idx].End {
		return rs[idx], true
	}
	return Region{}, false
}

// Normalize sorts regions and merges overlapping ones; the earlier region's
// kind wins.
func (rs Regions) Normalize() Regions {
	if len(rs) == 0 {
		return nil
	}
	out := append(Regions(nil), rs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	merged := out[:0]
	for _, r := range out {
		if r.End <= r.Start {
			continue
		}
		if n := len(merged); n > 0 && r.Start < merged[n-1].End {
			if r.End > merged[n-1].End {
				merged[n-1].End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// RegionOracle answers from a precomputed region index.
type RegionOracle struct {
	regions Regions
	text    bool
}

// NewRegionOracle indexes regions. When textLike is set every position is
// accepted.
func NewRegionOracle(regions Regions, textLike bool) *RegionOracle {
	return &RegionOracle{regions: regions.Normalize(), text: textLike}
}

func (o *RegionOracle) InsideCommentOrString(offset int) bool {
	_, ok := o.regions.Find(offset)
	return ok
}

func (o *RegionOracle) TextLike() bool { return o.text }

// KindAt reports the region kind at offset, or MatchKindText for prose
// buffers.
func (o *RegionOracle) KindAt(offset int) model.MatchKind {
	if r, ok := o.regions.Find(offset); ok {
		return r.Kind
	}
	if o.text {
		return model.MatchKindText
	}
	return model.MatchKindUnknown
}

// Regions returns the normalized index.
func (o *RegionOracle) Regions() Regions { return o.regions }

// Text returns an oracle for prose buffers.
func Text() *RegionOracle { return &RegionOracle{text: true} }

// None returns an oracle that accepts nothing.
func None() *RegionOracle { return &RegionOracle{} }

// Kinder is implemented by oracles that can name the region kind.
type Kinder interface {
	KindAt(offset int) model.MatchKind
}

// KindAt asks o for the kind at offset when it knows, else derives it from
// the two predicates.
func KindAt(o Oracle, offset int) model.MatchKind {
	if k, ok := o.(Kinder); ok {
		return k.KindAt(offset)
	}
	if o.InsideCommentOrString(offset) {
		return model.MatchKindComment
	}
	if o.TextLike() {
		return model.MatchKindText
	}
	return model.MatchKindUnknown
}

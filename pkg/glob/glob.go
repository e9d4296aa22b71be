// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

// Package glob implements the dedicated glob-pattern value type the
// Reservation Manager needs (spec.md §9 design note: "model as a
// dedicated value type with an overlaps(other) bool decision
// procedure... do not reuse a raw path-string comparison").
//
// No file in the retrieval pack implements glob/glob overlap
// detection, so the token-sequence NFA-product procedure below is
// built directly from spec.md §4.3's own description rather than
// transcribed from an example; see DESIGN.md.
package glob

import "strings"

// segKind classifies one slash-delimited token of a pattern.
type segKind int

const (
	segLiteral segKind = iota // an exact path segment
	segStar                   // '*' - matches exactly one segment, no '/'
	segStarStar               // '**' - matches zero or more segments
	segQuestion               // '?' within a literal handled at match time
)

type segment struct {
	kind segKind
	text string // literal text for segLiteral/segQuestion-bearing segments
}

// Pattern is the canonical token form of a glob pattern (spec.md §4.3
// step 2: "expand each pattern into its canonical token form").
type Pattern struct {
	raw      string
	segments []segment
}

// Parse normalizes raw into its canonical token form: a leading '/' is
// stripped, and a trailing '/' marks directory scope and is expanded to
// "…/**" (spec.md §4.3 step 2 edge policies).
func Parse(raw string) Pattern {
	p := strings.TrimPrefix(raw, "/")
	if strings.HasSuffix(p, "/") {
		p = p + "**"
	}

	parts := strings.Split(p, "/")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "**":
			segments = append(segments, segment{kind: segStarStar})
		case "*":
			segments = append(segments, segment{kind: segStar})
		default:
			segments = append(segments, segment{kind: segLiteral, text: part})
		}
	}

	return Pattern{raw: raw, segments: segments}
}

// String returns the original, unnormalized pattern text.
func (p Pattern) String() string { return p.raw }

// Overlaps reports whether there exists any concrete path that both p
// and other would match. Implemented as a pairwise simulation over the
// two token sequences (spec.md §4.3 step 2: "standard NFA-product over
// two glob automata"): overlaps tracks all (i, j) position pairs
// reachable by consuming the same concrete segments from both patterns
// simultaneously, memoized to keep the walk polynomial even with
// repeated "**" segments.
func (p Pattern) Overlaps(other Pattern) bool {
	memo := make(map[[2]int]bool)
	return overlaps(p.segments, other.segments, 0, 0, memo)
}

func overlaps(a, b []segment, i, j int, memo map[[2]int]bool) bool {
	key := [2]int{i, j}
	if v, ok := memo[key]; ok {
		return v
	}
	// Guard recursion before any work touches the map, so a pattern
	// with many consecutive "**" segments can't recurse unboundedly.
	memo[key] = false

	result := overlapsUncached(a, b, i, j, memo)
	memo[key] = result
	return result
}

func overlapsUncached(a, b []segment, i, j int, memo map[[2]int]bool) bool {
	aDone := i >= len(a)
	bDone := j >= len(b)

	if aDone && bDone {
		return true
	}

	// A "**" at the tail matches the empty remainder of the other side.
	if aDone {
		return isEmptyMatch(b[j:])
	}
	if bDone {
		return isEmptyMatch(a[i:])
	}

	sa, sb := a[i], b[j]

	switch {
	case sa.kind == segStarStar:
		// Try consuming zero segments (skip **) or one arbitrary
		// segment from b while staying on the same a position.
		if overlaps(a, b, i+1, j, memo) {
			return true
		}
		if !bDone && overlaps(a, b, i, j+1, memo) {
			return true
		}
		return false

	case sb.kind == segStarStar:
		if overlaps(a, b, i, j+1, memo) {
			return true
		}
		if !aDone && overlaps(a, b, i+1, j, memo) {
			return true
		}
		return false

	case sa.kind == segStar || sb.kind == segStar:
		// '*' matches exactly one concrete segment, which always
		// exists on the other side regardless of its own kind
		// (literal, '*', or a mid-pattern "**" boundary already
		// handled above), so the two segments always pair off.
		return overlaps(a, b, i+1, j+1, memo)

	default:
		if !literalsOverlap(sa.text, sb.text) {
			return false
		}
		return overlaps(a, b, i+1, j+1, memo)
	}
}

// isEmptyMatch reports whether the remaining segments can all be
// satisfied by zero concrete path segments (true iff every remaining
// segment is "**").
func isEmptyMatch(segs []segment) bool {
	for _, s := range segs {
		if s.kind != segStarStar {
			return false
		}
	}
	return true
}

// literalsOverlap decides whether two literal segments, each of which
// may contain '*' or '?' wildcards or '[...]' character classes, can
// match the same concrete segment. '*' matches any run of characters
// within the segment; '?' and a class match exactly one character.
func literalsOverlap(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || ra[0] != '*' {
		ra, rb = rb, ra // a leading '*' on either side is handled as ra's
	}
	if len(ra) > 0 && ra[0] == '*' {
		// '*' matches nothing, or absorbs the other side's next unit.
		if literalsOverlap(string(ra[1:]), string(rb)) {
			return true
		}
		if len(rb) == 0 {
			return false
		}
		_, widthB := classOf(rb, 0)
		return literalsOverlap(string(ra), string(rb[widthB:]))
	}
	if len(ra) == 0 || len(rb) == 0 {
		return len(ra) == 0 && len(rb) == 0
	}
	ca, widthA := classOf(ra, 0)
	cb, widthB := classOf(rb, 0)
	return ca.overlaps(cb) && literalsOverlap(string(ra[widthA:]), string(rb[widthB:]))
}

// charClass is the set of single characters (or "any") one position of
// a literal segment may match.
type charClass struct {
	any    bool
	set    map[rune]bool
	negate bool
}

func (c charClass) overlaps(o charClass) bool {
	if c.any || o.any {
		return true
	}
	// Two negated/open classes (e.g. both "[^a]") always share some
	// character outside both exclusion sets; treat as overlapping.
	if c.negate && o.negate {
		return true
	}
	if c.negate {
		c, o = o, c
	}
	for r := range c.set {
		if o.matches(r) {
			return true
		}
	}
	return false
}

func (c charClass) matches(r rune) bool {
	if c.any {
		return true
	}
	if c.negate {
		return !c.set[r]
	}
	return c.set[r]
}

// classOf reads one match-unit starting at i: '?' (any), a '[...]'
// class, or a single literal rune. Returns the class and its width in
// runes within the source slice.
func classOf(s []rune, i int) (charClass, int) {
	switch s[i] {
	case '?':
		return charClass{any: true}, 1
	case '[':
		end := i + 1
		negate := end < len(s) && (s[end] == '!' || s[end] == '^')
		if negate {
			end++
		}
		start := end
		for end < len(s) && s[end] != ']' {
			end++
		}
		set := make(map[rune]bool, end-start)
		for _, r := range s[start:end] {
			set[r] = true
		}
		if end < len(s) {
			end++ // consume ']'
		}
		return charClass{set: set, negate: negate}, end - i
	default:
		return charClass{set: map[rune]bool{s[i]: true}}, 1
	}
}

// Overlaps is a package-level convenience wrapping Parse+Pattern.Overlaps.
func Overlaps(a, b string) bool {
	return Parse(a).Overlaps(Parse(b))
}

// Match reports whether pattern p matches the concrete path (no
// wildcards on the path side); used by paths_status (spec.md §4.3).
func (p Pattern) Match(path string) bool {
	concrete := Parse(strings.TrimPrefix(path, "/"))
	for _, s := range concrete.segments {
		if s.kind != segLiteral {
			return false // path must be fully concrete
		}
	}
	return p.Overlaps(concrete)
}

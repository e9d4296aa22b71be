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

package glob

import "testing"

func TestOverlapsLiteral(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"src/auth.rs", "src/auth.rs", true},
		{"src/auth.rs", "src/other.rs", false},
		{"src/**", "src/auth.rs", true},
		{"src/**", "docs/readme.md", false},
		{"docs/**", "docs/readme.md", true},
		{"docs/*", "docs/a/b.md", false}, // '*' excludes '/'
		{"docs/**", "docs/a/b.md", true},
		{"*.go", "main.go", true},
		{"*.go", "main.py", false},
		{"a/*/c", "a/b/c", true},
		{"a/*/c", "a/b/x/c", false},
		{"a/**/c", "a/b/x/c", true},
		{"file.?", "file.a", true},
		{"file.[abc]", "file.b", true},
		{"file.[abc]", "file.z", false},
		{"file.[!abc]", "file.z", true},
		{"file.[!abc]", "file.a", false},
	}

	for _, c := range cases {
		got := Overlaps(c.a, c.b)
		if got != c.want {
			t.Errorf("Overlaps(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestOverlapsTwoWildcardPatterns(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"src/**", "src/auth/*.rs", true},
		{"src/**", "docs/**", false},
		{"a/**/z", "a/b/c/z", true},
		{"a/**/z", "a/**/y", false},
		{"**", "anything/at/all", true},
		{"**", "**", true},
	}

	for _, c := range cases {
		got := Overlaps(c.a, c.b)
		if got != c.want {
			t.Errorf("Overlaps(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"src/**", "src/auth/*.rs"},
		{"docs/*", "docs/a/b.md"},
		{"a/**/z", "a/b/c/z"},
	}
	for _, p := range pairs {
		if Overlaps(p[0], p[1]) != Overlaps(p[1], p[0]) {
			t.Errorf("Overlaps(%q, %q) is not symmetric", p[0], p[1])
		}
	}
}

func TestParseStripsLeadingSlashAndExpandsTrailing(t *testing.T) {
	if !Overlaps("/src/auth.rs", "src/auth.rs") {
		t.Error("leading slash should be stripped before comparison")
	}
	if !Overlaps("docs/", "docs/readme.md") {
		t.Error("trailing slash should expand to .../** ")
	}
}

func TestPatternMatch(t *testing.T) {
	p := Parse("src/**")
	if !p.Match("src/auth.rs") {
		t.Error("expected src/** to match src/auth.rs")
	}
	if p.Match("docs/readme.md") {
		t.Error("expected src/** not to match docs/readme.md")
	}
}

//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"sort"
	"testing"
)

func TestToSet(t *testing.T) {
	s := ToSet([]string{"grain", "ship", "grain"})
	if len(s) != 2 {
		t.Errorf("ToSet() yielded %d keys, want 2", len(s))
	}
	if _, ok := s["ship"]; !ok {
		t.Error("ToSet() lost 'ship'")
	}
}

func TestUnique(t *testing.T) {
	u := Unique([]string{"a", "a", "b", "a"})
	sort.Strings(u)
	if len(u) != 2 || u[0] != "a" || u[1] != "b" {
		t.Errorf("Unique() = %v, want [a b]", u)
	}
}

func TestSetSubtraction(t *testing.T) {
	aa := []string{"per", "topic", "term", "weight"}
	bb := []string{"per", "the", "and", "weight"}
	dd := SetSubtraction(aa, bb)
	if len(dd) != 2 || dd[0] != "topic" || dd[1] != "term" {
		t.Errorf("SetSubtraction() = %v, want [topic term]", dd)
	}
}

func TestContainsN(t *testing.T) {
	if n := ContainsN([]string{"x", "y", "x"}, "x"); n != 2 {
		t.Errorf("ContainsN() = %d, want 2", n)
	}
}

func TestFlattenSlices(t *testing.T) {
	fl := FlattenSlices([][]int{{1, 2}, {3}})
	if len(fl) != 3 || fl[2] != 3 {
		t.Errorf("FlattenSlices() = %v, want [1 2 3]", fl)
	}
}

func TestStringMapKeysIntoSlice(t *testing.T) {
	ks := StringMapKeysIntoSlice(map[string]int{"alpha": 1, "beta": 2})
	sort.Strings(ks)
	if len(ks) != 2 || ks[0] != "alpha" || ks[1] != "beta" {
		t.Errorf("StringMapKeysIntoSlice() = %v, want [alpha beta]", ks)
	}
}

func TestChunkSlice(t *testing.T) {
	ch := ChunkSlice([]int{1, 2, 3, 4, 5}, 2)
	if len(ch) != 3 {
		t.Fatalf("ChunkSlice() made %d chunks, want 3", len(ch))
	}
	if len(ch[2]) != 1 || ch[2][0] != 5 {
		t.Errorf("last chunk = %v, want [5]", ch[2])
	}
}

func TestPurgechars(t *testing.T) {
	if s := Purgechars(`"'&`, `"minutes" & 'agenda'`); s != "minutes  agenda" {
		t.Errorf("Purgechars() = %q, want 'minutes  agenda'", s)
	}
}

package practice

import (
	"testing"
)

func TestClassify(t *testing.T) {
	pop := NewPopulation(map[string]int64{
		"W00001": 10,
		"W00002": 20,
		"W00003": 30,
		"W00004": 40,
	})

	if got := pop.Median(); got != 25 {
		t.Fatalf("Median() = %v, want 25", got)
	}

	tests := []struct {
		practice string
		want     SizeLabel
	}{
		{"W00001", Small},
		{"W00002", Small},
		{"W00003", Big},
		{"W00004", Big},
		{"W99999", Small}, // no rows
	}

	for _, tt := range tests {
		t.Run(tt.practice, func(t *testing.T) {
			if got := pop.Classify(tt.practice); got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.practice, got, tt.want)
			}
		})
	}
}

func TestClassifyTieIsSmall(t *testing.T) {
	pop := NewPopulation(map[string]int64{
		"A": 5,
		"B": 7,
		"C": 100,
	})
	if pop.Median() != 7 {
		t.Fatalf("Median() = %v, want 7", pop.Median())
	}
	if got := pop.Classify("B"); got != Small {
		t.Errorf("count equal to median classified %s, want Small", got)
	}
	if got := pop.Classify("C"); got != Big {
		t.Errorf("Classify(C) = %s, want Big", got)
	}
}

func TestClassifyMatchesMedianDefinition(t *testing.T) {
	counts := map[string]int64{}
	for i, n := range []int64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3} {
		counts[string(rune('a'+i))] = n
	}
	pop := NewPopulation(counts)
	// sorted: 1 1 2 3 3 4 5 5 6 9 -> (3+4)/2
	if pop.Median() != 3.5 {
		t.Fatalf("Median() = %v, want 3.5", pop.Median())
	}
	for id, n := range counts {
		want := Small
		if float64(n) > 3.5 {
			want = Big
		}
		if got := pop.Classify(id); got != want {
			t.Errorf("Classify(%s) with count %d = %s, want %s", id, n, got, want)
		}
	}
}

func TestRefreshLeavesOldSnapshot(t *testing.T) {
	counts := map[string]int64{"A": 1, "B": 3}
	old := NewPopulation(counts)
	counts["A"] = 100 // caller's map mutated after snapshot

	if old.Count("A") != 1 {
		t.Fatalf("snapshot aliased caller map: Count(A) = %d", old.Count("A"))
	}

	fresh := old.Refresh(counts)
	if fresh.Median() != 51.5 {
		t.Errorf("fresh Median() = %v, want 51.5", fresh.Median())
	}
	if old.Median() != 2 {
		t.Errorf("old Median() = %v, want 2", old.Median())
	}
	if fresh.Classify("A") != Big || old.Classify("A") != Small {
		t.Error("Refresh changed classification of the old snapshot")
	}
}

func TestEmptyPopulation(t *testing.T) {
	pop := NewPopulation(nil)
	if pop.Size() != 0 || pop.Median() != 0 {
		t.Errorf("empty population: size %d median %v", pop.Size(), pop.Median())
	}
	if pop.Classify("X") != Small {
		t.Error("empty population should classify Small")
	}
}

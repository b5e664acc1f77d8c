package layout

import "testing"

func TestComputeLevels(t *testing.T) {
	tests := []struct {
		name      string
		intervals []Interval
		want      map[string]int
	}{
		{
			name: "disjoint share level zero",
			intervals: []Interval{
				{ID: "a", Start: 0, End: 10},
				{ID: "b", Start: 20, End: 30},
			},
			want: map[string]int{"a": 0, "b": 0},
		},
		{
			name: "touching intervals do not overlap",
			intervals: []Interval{
				{ID: "a", Start: 0, End: 10},
				{ID: "b", Start: 10, End: 20},
			},
			want: map[string]int{"a": 0, "b": 0},
		},
		{
			name: "overlap stacks",
			intervals: []Interval{
				{ID: "a", Start: 0, End: 10},
				{ID: "b", Start: 5, End: 15},
				{ID: "c", Start: 8, End: 12},
			},
			want: map[string]int{"a": 0, "b": 1, "c": 2},
		},
		{
			name: "lowest free level is reused",
			intervals: []Interval{
				{ID: "a", Start: 0, End: 10},
				{ID: "b", Start: 5, End: 30},
				{ID: "c", Start: 12, End: 20},
			},
			want: map[string]int{"a": 0, "b": 1, "c": 0},
		},
		{
			name: "longer first on equal start",
			intervals: []Interval{
				{ID: "short", Start: 0, End: 5},
				{ID: "long", Start: 0, End: 50},
			},
			want: map[string]int{"long": 0, "short": 1},
		},
		{
			name:      "empty",
			intervals: nil,
			want:      map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLevels(tt.intervals)
			if len(got) != len(tt.want) {
				t.Fatalf("ComputeLevels() = %v, want %v", got, tt.want)
			}
			for id, lv := range tt.want {
				if got[id] != lv {
					t.Errorf("level[%s] = %d, want %d", id, got[id], lv)
				}
			}
		})
	}
}

func TestComputeLevelsOrderIndependent(t *testing.T) {
	a := []Interval{{"x", 0, 10}, {"y", 2, 8}, {"z", 9, 20}, {"w", 15, 25}}
	b := []Interval{a[3], a[1], a[0], a[2]}

	la, lb := ComputeLevels(a), ComputeLevels(b)
	for id := range la {
		if la[id] != lb[id] {
			t.Errorf("level[%s] differs by input order: %d vs %d", id, la[id], lb[id])
		}
	}
}

func TestComputeLevelsNoOverlapWithinLevel(t *testing.T) {
	var ivs []Interval
	for i := 0; i < 40; i++ {
		start := float64((i * 37) % 200)
		ivs = append(ivs, Interval{ID: string(rune('A' + i)), Start: start, End: start + float64(10+i%7*9)})
	}
	levels := ComputeLevels(ivs)

	for i := range ivs {
		for j := i + 1; j < len(ivs); j++ {
			a, b := ivs[i], ivs[j]
			if levels[a.ID] == levels[b.ID] && a.Overlaps(b) {
				t.Errorf("%s and %s overlap on level %d", a.ID, b.ID, levels[a.ID])
			}
		}
	}
}

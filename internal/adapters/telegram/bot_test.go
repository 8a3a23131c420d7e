package telegram

import "testing"

func TestSameMultiset(t *testing.T) {
	cases := []struct {
		name string
		a, b []int
		want bool
	}{
		{"reordered", []int{2, 3, 4}, []int{4, 2, 3}, true},
		{"duplicates match", []int{5, 5, 1}, []int{1, 5, 5}, true},
		{"duplicate count differs", []int{5, 5, 1}, []int{5, 1, 1}, false},
		{"length differs", []int{1, 2}, []int{1, 2, 3}, false},
		{"empty", nil, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sameMultiset(tc.a, tc.b); got != tc.want {
				t.Fatalf("sameMultiset(%v,%v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

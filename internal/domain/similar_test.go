package domain

import "testing"

func TestSimilar(t *testing.T) {
	base := Job{ID: "1", Skills: []string{"Go", "SQL"}}
	all := []Job{
		base,
		{ID: "2", Skills: []string{"Figma"}},
		{ID: "3", Skills: []string{"sql"}},
		{ID: "4", Skills: []string{"go", "Docker"}},
		{ID: "5", Skills: []string{"Go"}},
	}

	got := Similar(base, all, 2)
	if ids(got) != "34" {
		t.Fatalf("got %v, want jobs 3 and 4 in order", ids(got))
	}

	if got := Similar(base, all, 0); len(got) != 0 {
		t.Fatalf("n=0 returned %v", ids(got))
	}
	if got := Similar(Job{ID: "x"}, all, 3); len(got) != 0 {
		t.Fatalf("job without skills returned %v", ids(got))
	}
}

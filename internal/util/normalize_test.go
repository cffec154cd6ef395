package util

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestCleanText(t *testing.T) {
	if got := CleanText("  a   b\n\tc  "); got != "a b c" {
		t.Errorf("CleanText = %q", got)
	}
}

func TestCleanList(t *testing.T) {
	if got := CleanList([]string{" a ", "", "  ", "b"}); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("CleanList = %q", got)
	}
	if got := CleanList(nil); got != nil {
		t.Errorf("CleanList(nil) = %q", got)
	}
}

func TestFold(t *testing.T) {
	if Fold("كيك") != Fold("کیک") {
		t.Error("arabic kaf/yeh should fold to persian forms")
	}
	if Fold("نرم‌افزار") != "نرمافزار" {
		t.Errorf("zwnj not removed: %q", Fold("نرم‌افزار"))
	}
	if Fold("  AWS ") != "aws" {
		t.Errorf("Fold(AWS) = %q", Fold("  AWS "))
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Node.js، C++ (دورکاری)/React")
	want := []string{"node.js", "c++", "دورکاری", "react"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens = %q, want %q", got, want)
	}
}

func TestContainsFolded(t *testing.T) {
	if !ContainsFolded("Toronto, ONTARIO", "ontario") {
		t.Error("case-insensitive match failed")
	}
	if !ContainsFolded("anything", "  ") {
		t.Error("empty needle should match")
	}
	if ContainsFolded("Montreal", "ontario") {
		t.Error("unexpected match")
	}
}

func TestHostLimiterBucketsPerHost(t *testing.T) {
	hl := NewHostLimiter(1000, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for _, u := range []string{"https://a.example/x", "https://A.example/y", "https://b.example", "::bad"} {
		if err := hl.WaitURL(ctx, u); err != nil {
			t.Fatalf("WaitURL(%q) = %v", u, err)
		}
	}
	if hl.Hosts() != 3 {
		t.Errorf("Hosts() = %d, want 3 (a, b, fallback)", hl.Hosts())
	}
}

func TestHostLimiterHonoursContext(t *testing.T) {
	hl := NewHostLimiter(0.001, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_ = hl.WaitURL(ctx, "https://slow.example")
	if err := hl.WaitURL(ctx, "https://slow.example"); err == nil {
		t.Error("second wait should fail once the burst is spent")
	}
}

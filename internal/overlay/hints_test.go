package overlay

import "testing"

func TestParseHints(t *testing.T) {
	h, err := ParseHints([]string{"undecorated", "below", "sticky"})
	if err != nil {
		t.Fatalf("ParseHints: %v", err)
	}
	for _, want := range []Hint{HintUndecorated, HintBelow, HintSticky} {
		if !h.Has(want) {
			t.Errorf("missing hint %b", want)
		}
	}
	if h.Has(HintAbove) || h.Has(HintSkipPager) {
		t.Error("unexpected hints set")
	}
}

func TestParseHintsOrderIndependent(t *testing.T) {
	a, err := ParseHints([]string{"below", "skip_taskbar"})
	if err != nil {
		t.Fatalf("ParseHints: %v", err)
	}
	b, err := ParseHints([]string{"skip_taskbar", "below"})
	if err != nil {
		t.Fatalf("ParseHints: %v", err)
	}
	if a != b {
		t.Errorf("hint order changed result: %b vs %b", a, b)
	}
}

func TestParseHintsUnknown(t *testing.T) {
	if _, err := ParseHints([]string{"below", "nope"}); err == nil {
		t.Fatal("expected error for unknown hint")
	}
}

func TestParseHintsNormalizesCase(t *testing.T) {
	h, err := ParseHints([]string{" Undecorated ", "BELOW"})
	if err != nil {
		t.Fatalf("ParseHints: %v", err)
	}
	if !h.Has(HintUndecorated) || !h.Has(HintBelow) {
		t.Errorf("got %b", h)
	}
}

func TestStatesForAdditive(t *testing.T) {
	single := statesFor(HintSticky)
	if len(single) != 1 || single[0] != "_NET_WM_STATE_STICKY" {
		t.Fatalf("statesFor(sticky) = %v", single)
	}

	all := statesFor(HintBelow | HintSticky | HintSkipTaskbar | HintSkipPager)
	want := []string{
		"_NET_WM_STATE_BELOW",
		"_NET_WM_STATE_STICKY",
		"_NET_WM_STATE_SKIP_TASKBAR",
		"_NET_WM_STATE_SKIP_PAGER",
	}
	if len(all) != len(want) {
		t.Fatalf("statesFor = %v, want %v", all, want)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("state[%d] = %q, want %q", i, all[i], want[i])
		}
	}
}

func TestStatesForUndecoratedHasNoState(t *testing.T) {
	if got := statesFor(HintUndecorated); len(got) != 0 {
		t.Errorf("undecorated should produce no states, got %v", got)
	}
}

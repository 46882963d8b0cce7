package nasdaq

import "testing"

func TestStopAfter_EmptyPage(t *testing.T) {
	if got := stopAfter(1, 0, 0); got != stopEmptyPage {
		t.Fatalf("want stopEmptyPage, got %d", got)
	}
	// An empty page wins over every other reason, even on the last page.
	if got := stopAfter(100, 0, 100); got != stopEmptyPage {
		t.Fatalf("want stopEmptyPage at the bound, got %d", got)
	}
}

func TestStopAfter_ShortPage(t *testing.T) {
	if got := stopAfter(1, 99, 0); got != stopShortPage {
		t.Fatalf("want stopShortPage, got %d", got)
	}
	if got := stopAfter(3, 1, 10); got != stopShortPage {
		t.Fatalf("want stopShortPage mid-walk, got %d", got)
	}
}

func TestStopAfter_PageBound(t *testing.T) {
	// Stated total pages bounds the walk when smaller than maxPages.
	if got := stopAfter(2, 100, 2); got != stopPageBound {
		t.Fatalf("want stopPageBound at stated total, got %d", got)
	}
	if got := stopAfter(1, 100, 2); got != stopNone {
		t.Fatalf("want stopNone below stated total, got %d", got)
	}

	// With no stated total the walk halts at maxPages.
	if got := stopAfter(100, 100, 0); got != stopPageBound {
		t.Fatalf("want stopPageBound at maxPages, got %d", got)
	}
	if got := stopAfter(99, 100, 0); got != stopNone {
		t.Fatalf("want stopNone below maxPages, got %d", got)
	}

	// A stated total above maxPages never overrides the safety valve.
	if got := stopAfter(100, 100, 150); got != stopPageBound {
		t.Fatalf("want stopPageBound despite larger stated total, got %d", got)
	}
}

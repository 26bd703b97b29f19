package models

import "testing"

func TestPushForm_CapsAtWindow(t *testing.T) {
	form := []string{}
	for _, result := range []string{"W", "W", "L", "D", "W", "L"} {
		form = PushForm(form, result)
	}

	if len(form) != FormWindow {
		t.Fatalf("expected %d entries, got %d", FormWindow, len(form))
	}
	// Oldest "W" dropped, most recent last.
	want := []string{"W", "L", "D", "W", "L"}
	for i := range want {
		if form[i] != want[i] {
			t.Fatalf("form[%d] = %s, want %s", i, form[i], want[i])
		}
	}
}

func TestPushForm_ShortHistory(t *testing.T) {
	form := PushForm(nil, "D")
	if len(form) != 1 || form[0] != "D" {
		t.Fatalf("unexpected form %v", form)
	}
}

func TestSportCapacity(t *testing.T) {
	sport := Sport{PlayersPerSide: 5}
	if sport.Capacity() != 10 {
		t.Fatalf("expected capacity 10, got %d", sport.Capacity())
	}
}

func TestMatchHasPlayer(t *testing.T) {
	match := Match{
		TeamAPlayers: []string{"p1"},
		TeamBPlayers: []string{"p2"},
	}
	if !match.HasPlayer("p1") || !match.HasPlayer("p2") {
		t.Fatal("expected both rostered players to be found")
	}
	if match.HasPlayer("p3") {
		t.Fatal("p3 is not on the roster")
	}
}

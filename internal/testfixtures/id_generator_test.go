package testfixtures

import "testing"

func TestIDGeneratorProducesSequentialIDs(t *testing.T) {
	gen := NewIDGenerator("")

	first := gen.Next()
	second := gen.Next()

	if first != "event-1" || second != "event-2" {
		t.Fatalf("unexpected identifiers: %q, %q", first, second)
	}
}

func TestIDGeneratorQueue(t *testing.T) {
	gen := NewIDGenerator("evt")
	gen.Queue("fixed", "fixed")

	got := []string{gen.Next(), gen.Next(), gen.Next()}
	want := []string{"fixed", "fixed", "evt-1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("id %d = %q, want %q", i, got[i], want[i])
		}
	}
}

package idgen

import "testing"

func TestSnowflakeMonotonic(t *testing.T) {
	g, err := NewSnowflake(1)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	seen := make(map[int64]bool)
	prev := int64(0)
	for i := 0; i < 5000; i++ {
		id := g.NextID()
		if id <= prev {
			t.Fatalf("id %d not greater than %d", id, prev)
		}
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
		prev = id
	}
}

func TestSnowflakeInvalidNode(t *testing.T) {
	if _, err := NewSnowflake(4096); err == nil {
		t.Fatal("expected error for out of range node")
	}
}

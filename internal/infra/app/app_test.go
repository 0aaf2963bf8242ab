package app

import "testing"

func TestShutdownStackClosesInReverseOrder(t *testing.T) {
	var order []string
	stack := &shutdownStack{}

	stack.push(func() { order = append(order, "pool") })
	stack.push(func() { order = append(order, "redis") })
	stack.push(func() { order = append(order, "producer") })

	stack.close()

	if len(order) != 3 {
		t.Fatalf("expected all closers to run, got %v", order)
	}
	if order[0] != "producer" || order[1] != "redis" || order[2] != "pool" {
		t.Fatalf("expected reverse acquisition order, got %v", order)
	}
}

func TestShutdownStackCloseIsIdempotent(t *testing.T) {
	calls := 0
	stack := &shutdownStack{}
	stack.push(func() { calls++ })

	stack.close()
	stack.close()

	if calls != 1 {
		t.Fatalf("expected closers to run once, ran %d times", calls)
	}
}

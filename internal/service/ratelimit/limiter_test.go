package ratelimit

import "testing"

func TestAllowConsumesCapacity(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("eurusd", 3, 0.0001) {
			t.Fatalf("call %d should be allowed", i)
		}
	}
	if l.Allow("eurusd", 3, 0.0001) {
		t.Fatalf("bucket should be drained")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0.0001) {
		t.Fatalf("first key should be allowed")
	}
	if l.Allow("a", 1, 0.0001) {
		t.Fatalf("first key should be drained")
	}
	if !l.Allow("b", 1, 0.0001) {
		t.Fatalf("second key should have its own bucket")
	}
}

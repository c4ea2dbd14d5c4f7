package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestKeyedLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kl := New(tt.rps, tt.burst)

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if kl.Allow("10.0.0.1") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedLimiter_IndependentKeys(t *testing.T) {
	kl := New(1, 1)

	kl.Allow("10.0.0.1")
	if kl.Allow("10.0.0.1") {
		t.Error("exhausted key should be denied")
	}

	if !kl.Allow("10.0.0.2") {
		t.Error("fresh key should be allowed")
	}
}

func TestKeyedLimiter_WaitContextCanceled(t *testing.T) {
	kl := New(0.1, 1)
	kl.Allow("upstream")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := kl.Wait(ctx, "upstream"); err == nil {
		t.Error("Wait() should fail once the context is canceled")
	}
}

func TestKeyedLimiter_WaitPacesRequests(t *testing.T) {
	kl := New(10, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if err := kl.Wait(ctx, "upstream"); err != nil {
		t.Fatalf("first Wait() failed: %v", err)
	}

	start := time.Now()
	if err := kl.Wait(ctx, "upstream"); err != nil {
		t.Fatalf("second Wait() failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("second Wait() returned after %v, want ~100ms pacing", elapsed)
	}
}

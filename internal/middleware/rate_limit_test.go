package middleware

import "testing"

func TestRateLimiterAllow(t *testing.T) {
	t.Run("burst then limit", func(t *testing.T) {
		rl := newRateLimiter(60) // 1/s, burst 6

		for i := 0; i < 6; i++ {
			if err := rl.Allow("dev-1"); err != nil {
				t.Fatalf("request %d within burst rejected: %v", i+1, err)
			}
		}
		if err := rl.Allow("dev-1"); err == nil {
			t.Error("expected rejection past the burst")
		}
	})

	t.Run("sources are independent", func(t *testing.T) {
		rl := newRateLimiter(60)

		for i := 0; i < 6; i++ {
			_ = rl.Allow("dev-1")
		}
		if err := rl.Allow("dev-2"); err != nil {
			t.Errorf("a fresh source must have its own bucket: %v", err)
		}
	})

	t.Run("minimum burst of one", func(t *testing.T) {
		rl := newRateLimiter(5)
		if err := rl.Allow("dev-1"); err != nil {
			t.Errorf("first request must pass: %v", err)
		}
	})
}

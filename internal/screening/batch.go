package screening

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// Progress receives (completed, total) after each profile finishes.
// Completed counts are strictly increasing even when profiles are
// screened concurrently.
type Progress func(completed, total int)

// ScreenAll classifies every profile in input order. The returned slice
// always has one entry per input profile: individual failures surface as
// fallback verdicts, never as missing entries. Execution order is
// unspecified when concurrency is above one; result order is not.
func (s *Screener) ScreenAll(ctx context.Context, profiles []string, progress Progress) []Result {
	total := len(profiles)
	results := make([]Result, total)
	if total == 0 {
		return results
	}

	p := pool.New().WithMaxGoroutines(s.concurrency)

	var mu sync.Mutex
	completed := 0

	for idx, profileText := range profiles {
		idx, profileText := idx, profileText
		p.Go(func() {
			verdict := s.Screen(ctx, profileText)

			mu.Lock()
			results[idx] = Result{Profile: profileText, Verdict: verdict}
			completed++
			if progress != nil {
				progress(completed, total)
			}
			mu.Unlock()
		})
	}

	p.Wait()

	return results
}

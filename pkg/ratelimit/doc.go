// Package ratelimit paces unsend actions so a long cleanup does not trip
// Instagram's action limits.
//
// SlidingWindow allows at most N actions in any rolling window. PerMinute(0)
// returns Unlimited, which never blocks.
//
//	limiter := ratelimit.PerMinute(30)
//	if err := limiter.Wait(ctx); err != nil {
//	    return err
//	}
//	// unsend one message
package ratelimit

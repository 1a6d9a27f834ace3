// Package schedule implements working-time arithmetic over a weekly
// availability pattern.
//
// Both queries decompose an inclusive date span into full weeks plus a
// 0-6 day remainder, so cost is O(1) in the number of days spanned. The
// queries run on every render pass, so results are memoized per
// (start, end, schedule contents); the cache is dropped whenever the
// schedule configuration changes.
//
// The Calc is not safe for concurrent use. The engine is single-threaded
// and event-driven, so all queries come from one goroutine.
package schedule

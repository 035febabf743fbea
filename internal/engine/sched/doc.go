// Package sched provides the Scheduler abstraction used for all deferred
// work in the engine: bracket lookups and background tokenizer passes.
//
// Schedulers decide where callbacks run:
//
//   - TimerScheduler: on the runtime timer goroutine
//   - LoopScheduler: delivered on a channel the host's event loop drains
//   - ManualScheduler: synchronously from Advance, for tests
package sched

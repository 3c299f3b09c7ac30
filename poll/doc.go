// Package poll defines the cooperative computation model the rest of this
// module builds on: futures advanced by explicit polling, sharing one
// notification context per suspension point. It also ships Block, a minimal
// single-goroutine driver, for hosts that do not bring their own loop.
package poll

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "time"

// DefaultFrameInterval caps rendering at 60 frames per second.
const DefaultFrameInterval = time.Second / 60

// Pacer stretches each frame to at least Interval by sleeping on the
// calling goroutine.
type Pacer struct {
	Interval time.Duration

	// Now and Sleep default to time.Now and time.Sleep.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// NewPacer returns a pacer with the given interval. A non-positive interval
// selects DefaultFrameInterval.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Pacer{Interval: interval, Now: time.Now, Sleep: time.Sleep}
}

// Pace runs fn and then sleeps for whatever remains of the interval.
// fn's error is returned after the sleep.
func (p *Pacer) Pace(fn func() error) error {
	now, sleep := p.Now, p.Sleep
	if now == nil {
		now = time.Now
	}
	if sleep == nil {
		sleep = time.Sleep
	}

	start := now()
	err := fn()
	if elapsed := now().Sub(start); elapsed < p.Interval {
		sleep(p.Interval - elapsed)
	}
	return err
}

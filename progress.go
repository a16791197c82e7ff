package main

import (
	"fmt"
	"math"
	"time"
)

// ==================== PROGRESS REPORTING ====================

const (
	progressInterval  = time.Second
	progressJoinGrace = 200 * time.Millisecond
)

type progressSample struct {
	done    int64
	percent float64
	rate    float64
	elapsed float64
	eta     float64
}

// computeProgress derives one progress sample from the counter deltas. The
// instantaneous rate uses the interval since the previous sample, clamped so
// a zero dt cannot divide out. A zero rate reports eta as 0 rather than Inf.
func computeProgress(done, last int64, total uint64, dt, elapsed float64) progressSample {
	rate := float64(done-last) / math.Max(1e-6, dt)

	percent := 100.0
	if total > 0 {
		percent = float64(done) / float64(total) * 100.0
	}

	eta := 0.0
	if rate > 0 && uint64(done) < total {
		eta = float64(total-uint64(done)) / rate
	}

	return progressSample{
		done:    done,
		percent: percent,
		rate:    rate,
		elapsed: elapsed,
		eta:     eta,
	}
}

// runProgressReporter prints one status line per second until stopped, and
// keeps the on-disk statistics fresh while the workers run.
func (h *Hunter) runProgressReporter(start time.Time, total uint64, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	var last int64
	lastTick := start

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			sample := computeProgress(h.attempts.Load(), last, total,
				now.Sub(lastTick).Seconds(), now.Sub(start).Seconds())
			last = sample.done
			lastTick = now

			h.sink.print(fmt.Sprintf("[progress] %s / %s (%.2f%%) | rate: %.0f/s | elapsed: %.1fs | eta: %.1fs\n",
				h.printer.Sprintf("%d", sample.done), h.printer.Sprintf("%d", total),
				sample.percent, sample.rate, sample.elapsed, sample.eta))

			if h.results != nil {
				if err := h.results.SaveStats(h.snapshotStats(total, start)); err != nil {
					h.logger.Debugf("periodic stats save failed: %v", err)
				}
			}
		}
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/message"
)

// ==================== SEARCH TUNING ====================

const (
	// counterBatchMask batches worker counts: the shared counter is touched
	// once per 16384 candidates instead of once per candidate.
	counterBatchMask = 0x3FFF

	// Hit buffers flush once they grow past these sizes (bytes). Match-any
	// runs can produce many hits, exact-target runs rarely more than one.
	hitBufFlushAny   = 2048
	hitBufFlushExact = 1024
)

// ==================== OUTPUT SINK ====================

// outputSink serializes console writes so hit batches from different workers
// and progress lines never interleave mid-line. Hits are forwarded to the
// results writer when one is configured.
type outputSink struct {
	mu      sync.Mutex
	out     io.Writer
	results *ResultsWriter
	logger  *logrus.Logger
}

func (s *outputSink) print(line string) {
	s.mu.Lock()
	fmt.Fprint(s.out, line)
	s.mu.Unlock()
}

func (s *outputSink) flushHits(buf *strings.Builder, hits []Hit) {
	if buf.Len() > 0 {
		s.print(buf.String())
		buf.Reset()
	}
	if s.results != nil && len(hits) > 0 {
		if err := s.results.SaveHits(hits); err != nil {
			s.logger.Warnf("failed to save hits: %v", err)
		}
	}
}

// ==================== MAIN APPLICATION CONTROLLER ====================

// Hunter owns one search run: the compiled pattern, the name table, the
// output paths and the shared counters.
type Hunter struct {
	config  *Config
	logger  *logrus.Logger
	printer *message.Printer
	sink    *outputSink
	results *ResultsWriter

	pattern  *Pattern
	names    NameTable
	target   uint32
	matchAny bool

	attempts  atomic.Int64
	hitsFound atomic.Int64
}

func NewHunter(cfg *Config, rawPattern, rawTarget string) (*Hunter, error) {
	// Setup logger
	logger := setupLogger(cfg.Output)

	// Surrounding whitespace is shell noise; interior spaces are legal
	// template characters and survive.
	pattern, err := compilePattern(strings.TrimSpace(rawPattern))
	if err != nil {
		return nil, err
	}

	target, matchAny, err := parseTarget(rawTarget)
	if err != nil {
		return nil, err
	}

	h := &Hunter{
		config:   cfg,
		logger:   logger,
		printer:  message.NewPrinter(message.MatchLanguage("en")),
		pattern:  pattern,
		target:   target,
		matchAny: matchAny,
	}

	// Name table: required for match-any hits, optional labels otherwise
	h.names = loadNameTable(cfg.Lookup, logger)
	if matchAny && len(h.names) == 0 {
		logger.Warn("name table is empty; match-any mode cannot produce hits")
	}

	if cfg.Output.ResultsDir != "" {
		results, err := NewResultsWriter(&cfg.Output, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create results writer: %w", err)
		}
		h.results = results
	}

	h.sink = &outputSink{
		out:     os.Stdout,
		results: h.results,
		logger:  logger,
	}

	return h, nil
}

// Run executes the search to range exhaustion (or cancellation) and prints
// the final summary. A wildcard count past the enumerable limit is a clean
// refusal, not an error.
func (h *Hunter) Run(ctx context.Context) error {
	wc := h.pattern.Wildcards()
	if wc > maxWildcards {
		h.sink.print(fmt.Sprintf("wildcards: %d | search space 64^%d exceeds the 64-bit index range, reduce the wildcard count\n", wc, wc))
		if h.results != nil {
			if err := h.results.Close(); err != nil {
				h.logger.Warnf("failed to close results writer: %v", err)
			}
		}
		return nil
	}

	total := h.pattern.SpaceSize()
	threads := h.config.Search.Threads

	h.printStartup(total, threads)

	searchStart := time.Now()

	// Progress reporter
	stopProgress := make(chan struct{})
	progressDone := make(chan struct{})
	go h.runProgressReporter(searchStart, total, stopProgress, progressDone)

	// Workers, one disjoint index range each
	g, gctx := errgroup.WithContext(ctx)
	for workerID, r := range partitionRange(total, threads) {
		workerID, r := workerID, r // per-iteration copies; go directive predates Go 1.22 loop scoping
		g.Go(func() error {
			return h.searchRange(gctx, workerID, r.start, r.end)
		})
	}
	err := g.Wait()

	// Stop the reporter, bounded grace for its last line
	close(stopProgress)
	select {
	case <-progressDone:
	case <-time.After(progressJoinGrace):
	}

	elapsed := time.Since(searchStart)
	done := h.attempts.Load()
	rate := float64(done) / math.Max(1e-9, elapsed.Seconds())
	h.sink.print(fmt.Sprintf("done: %s / %s | elapsed: %.3fs | avg rate: %.0f/s\n",
		h.printer.Sprintf("%d", done), h.printer.Sprintf("%d", total), elapsed.Seconds(), rate))

	h.saveFinalResults(total, searchStart)

	h.logger.Infof("search finished in %s (%s hits)",
		formatDurationDetailed(elapsed), formatNumberLarge(h.hitsFound.Load()))

	if err != nil {
		if errors.Is(err, context.Canceled) {
			h.logger.Warn("search interrupted before full range exhaustion")
			return nil
		}
		return err
	}
	return nil
}

func (h *Hunter) printStartup(total uint64, threads int) {
	h.sink.print(fmt.Sprintf("pattern: %s | wildcards: %d | combinations: %s | workers: %d\n",
		h.pattern.raw, h.pattern.Wildcards(), h.printer.Sprintf("%d", total), threads))

	h.logger.Infof("EAID Hunter v%s (build %s)", Version, BuildDate)
	if h.matchAny {
		h.logger.Infof("  mode: match-any against %d known checksums", len(h.names))
	} else {
		h.logger.Infof("  mode: exact target %08X", h.target)
	}
	h.logger.Infof("  search space: %s candidates across %d workers", formatNumberLarge(int64(total)), threads)
	if h.config.loadedFrom != "" {
		h.logger.Debugf("  configuration loaded from %s", h.config.loadedFrom)
	}
	if h.results != nil {
		h.logger.Infof("  results directory: %s", h.results.baseDir)
	}
}

func (h *Hunter) saveFinalResults(total uint64, start time.Time) {
	if h.results == nil {
		return
	}
	if err := h.results.SaveStats(h.snapshotStats(total, start)); err != nil {
		h.logger.Warnf("failed to save final statistics: %v", err)
	}
	if err := h.results.Close(); err != nil {
		h.logger.Warnf("failed to close results writer: %v", err)
	}
}

func (h *Hunter) snapshotStats(total uint64, start time.Time) *SearchStats {
	done := h.attempts.Load()
	elapsed := time.Since(start).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(done) / elapsed
	}
	targetHex := ""
	if !h.matchAny {
		targetHex = fmt.Sprintf("%08X", h.target)
	}
	return &SearchStats{
		Pattern:        h.pattern.raw,
		Target:         targetHex,
		MatchAny:       h.matchAny,
		Wildcards:      h.pattern.Wildcards(),
		SpaceSize:      total,
		Workers:        h.config.Search.Threads,
		Attempts:       done,
		Hits:           h.hitsFound.Load(),
		StartTime:      start,
		ElapsedSeconds: elapsed,
		AvgRate:        rate,
		Version:        Version,
		GoVersion:      runtime.Version(),
		Hostname:       getHostnameSafe(),
	}
}

// ==================== RANGE PARTITIONING ====================

type indexRange struct {
	start, end uint64
}

// partitionRange splits [0, total) into workers contiguous ranges. The last
// range absorbs the remainder so the union is exactly [0, total); ranges
// beyond the space come out empty.
func partitionRange(total uint64, workers int) []indexRange {
	if workers < 1 {
		workers = 1
	}
	chunk := total / uint64(workers)
	if chunk < 1 {
		chunk = 1
	}

	ranges := make([]indexRange, workers)
	for i := 0; i < workers; i++ {
		start := uint64(i) * chunk
		end := start + chunk
		if i == workers-1 || end > total {
			end = total
		}
		if start >= total {
			start, end = total, total
		}
		ranges[i] = indexRange{start: start, end: end}
	}
	return ranges
}

// ==================== SEARCH WORKER ====================

// searchRange enumerates [start, end) in ascending order, scoring each
// candidate with the delta trick. Attempt counts merge into the shared
// counter in batches, hit text accumulates in a local buffer, and
// cancellation is only observed at batch boundaries so the inner loop stays
// free of synchronization.
func (h *Hunter) searchRange(ctx context.Context, worker int, start, end uint64) error {
	if start >= end {
		return nil
	}

	// Hoist hot-loop state into locals
	weights := h.pattern.weights
	wc := len(weights)
	base := h.pattern.base
	names := h.names
	target := h.target
	matchAny := h.matchAny

	flushLimit := hitBufFlushExact
	if matchAny {
		flushLimit = hitBufFlushAny
	}

	var local int64
	var buf strings.Builder
	var hits []Hit

	defer func() {
		if local > 0 {
			h.attempts.Add(local)
		}
		h.sink.flushHits(&buf, hits)
	}()

	for i := start; i < end; i++ {
		// 6-bit digit extraction instead of div/mod
		idx := i
		var extra uint32
		for j := 0; j < wc; j++ {
			extra += weights[j] * charDeltas[idx&63]
			idx >>= 6
		}
		sum := base + extra

		if matchAny {
			if label, ok := names[sum]; ok {
				id := h.pattern.reconstruct(i)
				fmt.Fprintf(&buf, "match: %s -> %s (%08X)\n", id, label, sum)
				h.hitsFound.Add(1)
				if h.results != nil {
					hits = append(hits, Hit{ID: id, Label: label, Checksum: sum, Worker: worker, FoundAt: time.Now()})
				}
				if buf.Len() > flushLimit {
					h.sink.flushHits(&buf, hits)
					hits = hits[:0]
				}
			}
		} else if sum == target {
			label, ok := names[sum]
			if !ok {
				label = "unknown"
			}
			id := h.pattern.reconstruct(i)
			fmt.Fprintf(&buf, "hit: %s -> %s (%08X)\n", id, label, sum)
			h.hitsFound.Add(1)
			if h.results != nil {
				hits = append(hits, Hit{ID: id, Label: label, Checksum: sum, Worker: worker, FoundAt: time.Now()})
			}
			if buf.Len() > flushLimit {
				h.sink.flushHits(&buf, hits)
				hits = hits[:0]
			}
		}

		// Merge counts in batches to keep the shared counter cold
		local++
		if local&counterBatchMask == 0 {
			h.attempts.Add(local)
			local = 0
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}

	return nil
}

package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sugawarayuuta/sonnet"
)

// ==================== RESULT RECORDS ====================

// Hit is one found EAID.
type Hit struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Checksum uint32    `json:"checksum"`
	Worker   int       `json:"worker"`
	FoundAt  time.Time `json:"found_at"`
}

// SearchStats is the run summary written to the stats file, refreshed every
// progress tick and once more after the final summary line.
type SearchStats struct {
	Pattern        string    `json:"pattern"`
	Target         string    `json:"target,omitempty"`
	MatchAny       bool      `json:"match_any"`
	Wildcards      int       `json:"wildcards"`
	SpaceSize      uint64    `json:"space_size"`
	Workers        int       `json:"workers"`
	Attempts       int64     `json:"attempts"`
	Hits           int64     `json:"hits"`
	StartTime      time.Time `json:"start_time"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
	AvgRate        float64   `json:"avg_rate"`
	Version        string    `json:"version"`
	GoVersion      string    `json:"go_version"`
	Hostname       string    `json:"hostname"`
}

// ==================== RESULTS STORAGE ====================

// ResultsWriter persists hits and run statistics under the results
// directory. Console output does not go through here; this is the on-disk
// record for longer hunts.
type ResultsWriter struct {
	config  *OutputConfig
	baseDir string
	logger  *logrus.Logger
	mu      sync.Mutex

	hitsFile   *os.File
	hitsWriter *csv.Writer
	statsFile  *os.File

	hitsSaved int64
}

func NewResultsWriter(cfg *OutputConfig, logger *logrus.Logger) (*ResultsWriter, error) {
	baseDir := cfg.ResultsDir
	if baseDir == "" {
		baseDir = "."
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}

	rw := &ResultsWriter{
		config:  cfg,
		baseDir: baseDir,
		logger:  logger,
	}
	if err := rw.initializeFiles(); err != nil {
		return nil, err
	}
	return rw, nil
}

func (rw *ResultsWriter) initializeFiles() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	prefix := rw.config.FilenamePrefix
	if prefix == "" {
		prefix = "eaid"
	}

	if rw.config.SaveHits {
		hitsPath := filepath.Join(rw.baseDir, prefix+"_hits.csv")
		file, err := os.OpenFile(hitsPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open hits file: %w", err)
		}
		rw.hitsFile = file
		rw.hitsWriter = csv.NewWriter(file)

		// Write header if file is new
		if stat, _ := file.Stat(); stat.Size() == 0 {
			header := []string{"eaid", "checksum", "label", "worker", "found_at"}
			if err := rw.hitsWriter.Write(header); err != nil {
				return fmt.Errorf("failed to write hits header: %w", err)
			}
			rw.hitsWriter.Flush()
		}
	}

	if rw.config.SaveStats {
		statsPath := filepath.Join(rw.baseDir, prefix+"_stats.json")
		file, err := os.OpenFile(statsPath, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open stats file: %w", err)
		}
		rw.statsFile = file
	}

	return nil
}

// SaveHits appends one worker's hit batch to the CSV and flushes it, so a
// killed run keeps everything reported so far.
func (rw *ResultsWriter) SaveHits(hits []Hit) error {
	if rw.hitsWriter == nil || len(hits) == 0 {
		return nil
	}

	rw.mu.Lock()
	defer rw.mu.Unlock()

	for _, hit := range hits {
		record := []string{
			hit.ID,
			fmt.Sprintf("%08X", hit.Checksum),
			hit.Label,
			strconv.Itoa(hit.Worker),
			hit.FoundAt.Format(time.RFC3339Nano),
		}
		if err := rw.hitsWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write hit record: %w", err)
		}
		rw.hitsSaved++
	}

	rw.hitsWriter.Flush()
	if err := rw.hitsWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush hits file: %w", err)
	}
	return nil
}

// SaveStats rewrites the stats file with a fresh snapshot.
func (rw *ResultsWriter) SaveStats(stats *SearchStats) error {
	if rw.statsFile == nil {
		return nil
	}

	rw.mu.Lock()
	defer rw.mu.Unlock()

	if err := rw.statsFile.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate stats file: %w", err)
	}
	if _, err := rw.statsFile.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to seek stats file: %w", err)
	}

	data, err := sonnet.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}
	if _, err := rw.statsFile.Write(data); err != nil {
		return fmt.Errorf("failed to write statistics: %w", err)
	}
	return nil
}

// HitsSaved reports how many hit records went to disk.
func (rw *ResultsWriter) HitsSaved() int64 {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.hitsSaved
}

func (rw *ResultsWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	var errs []string

	if rw.hitsWriter != nil {
		rw.hitsWriter.Flush()
		if err := rw.hitsWriter.Error(); err != nil {
			errs = append(errs, fmt.Sprintf("hits writer: %v", err))
		}
	}
	if rw.hitsFile != nil {
		if err := rw.hitsFile.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("hits file: %v", err))
		}
	}
	if rw.statsFile != nil {
		if err := rw.statsFile.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("stats file: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("results close errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

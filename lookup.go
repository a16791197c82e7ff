package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"regexp"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// ==================== NAME TABLE ====================

// NameTable maps a 32-bit checksum to the known player name behind it.
// Loaded once before the search starts and read-only afterwards, so workers
// probe it without locking.
type NameTable map[uint32]string

// nameLineRe matches one table line: HEXCHECKSUM,"label". Anything else on a
// line is ignored.
var nameLineRe = regexp.MustCompile(`^([0-9A-Fa-f]+),"(.*)"$`)

// loadNameTable assembles the checksum-to-name mapping from the configured
// sources, file first, then database (database entries win on duplicate
// checksums). Load failures are non-fatal: the search still runs, it just
// cannot label hits or, in match-any mode, find any.
func loadNameTable(cfg LookupConfig, logger *logrus.Logger) NameTable {
	table := make(NameTable)

	if cfg.NameFile != "" {
		fromFile, err := loadNameFile(cfg.NameFile)
		switch {
		case os.IsNotExist(err):
			logger.Infof("name file %s not found; match-any mode needs --name-file or --name-db", cfg.NameFile)
		case err != nil:
			logger.Warnf("failed to read name file %s: %v", cfg.NameFile, err)
		default:
			logger.Debugf("name file %s: %d entries", cfg.NameFile, len(fromFile))
			for k, v := range fromFile {
				table[k] = v
			}
		}
	}

	if cfg.NameDB != "" {
		fromDB, err := loadNameDB(cfg.NameDB)
		if err != nil {
			logger.Warnf("failed to read name database %s: %v", cfg.NameDB, err)
		} else {
			logger.Debugf("name database %s: %d entries", cfg.NameDB, len(fromDB))
			for k, v := range fromDB {
				table[k] = v
			}
		}
	}

	if len(table) > 0 {
		logger.Infof("loaded %d name entries", len(table))
	}
	return table
}

// loadNameFile parses a text table, one HEXCHECKSUM,"label" pair per line.
// Malformed lines are skipped silently, duplicate checksums overwrite.
func loadNameFile(path string) (NameTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table := make(NameTable)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := nameLineRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		key, err := strconv.ParseUint(m[1], 16, 32)
		if err != nil {
			// Hex that does not fit 32 bits cannot be a checksum.
			continue
		}
		table[uint32(key)] = m[2]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// loadNameDB reads the names table from a SQLite database with the schema
// names(checksum TEXT, label TEXT), checksum in hex like the file format.
// The row count is fetched first so the map can be sized once.
func loadNameDB(path string) (NameTable, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM names").Scan(&count); err != nil {
		return nil, fmt.Errorf("count names: %w", err)
	}

	rows, err := db.Query("SELECT checksum, label FROM names")
	if err != nil {
		return nil, fmt.Errorf("query names: %w", err)
	}
	defer rows.Close()

	table := make(NameTable, count)
	for rows.Next() {
		var sum, label string
		if err := rows.Scan(&sum, &label); err != nil {
			return nil, fmt.Errorf("scan name row: %w", err)
		}
		key, err := strconv.ParseUint(sum, 16, 32)
		if err != nil {
			continue
		}
		table[uint32(key)] = label
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate names: %w", err)
	}
	return table, nil
}

package main

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestLoadNameFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.csv")
	content := "7D543A64,\"皇帝\"\n" +
		"0000002A,\"answer\"\n" +
		"not a table line\n" + // skipped
		"FFFFFFFF0,\"nine hex digits\"\n" + // does not fit 32 bits, skipped
		"2A,\"short form\"\n" // duplicate checksum, last one wins
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := loadNameFile(path)
	require.NoError(t, err)
	assert.Len(t, table, 2)
	assert.Equal(t, "皇帝", table[0x7D543A64])
	assert.Equal(t, "short form", table[0x2A])
}

func TestLoadNameFileMissing(t *testing.T) {
	_, err := loadNameFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadNameTableMissingSourcesIsEmpty(t *testing.T) {
	table := loadNameTable(LookupConfig{
		NameFile: filepath.Join(t.TempDir(), "absent.csv"),
	}, quietLogger())
	assert.Empty(t, table)
}

func createNameDB(t *testing.T, rows map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "names.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE names (checksum TEXT PRIMARY KEY, label TEXT NOT NULL)`)
	require.NoError(t, err)
	for sum, label := range rows {
		_, err = db.Exec(`INSERT INTO names (checksum, label) VALUES (?, ?)`, sum, label)
		require.NoError(t, err)
	}
	return path
}

func TestLoadNameDB(t *testing.T) {
	path := createNameDB(t, map[string]string{
		"7D543A64": "皇帝",
		"0000002A": "answer",
	})

	table, err := loadNameDB(path)
	require.NoError(t, err)
	assert.Len(t, table, 2)
	assert.Equal(t, "皇帝", table[0x7D543A64])
	assert.Equal(t, "answer", table[0x2A])
}

func TestLoadNameDBMissingFile(t *testing.T) {
	// Must not create an empty database as a side effect
	path := filepath.Join(t.TempDir(), "absent.db")
	_, err := loadNameDB(path)
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadNameTableDatabaseWinsOnDuplicates(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "names.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("2A,\"from file\"\n63,\"file only\"\n"), 0o644))

	dbPath := createNameDB(t, map[string]string{"2A": "from db"})

	table := loadNameTable(LookupConfig{NameFile: csvPath, NameDB: dbPath}, quietLogger())
	assert.Len(t, table, 2)
	assert.Equal(t, "from db", table[0x2A])
	assert.Equal(t, "file only", table[0x63])
}

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/obt-cli/internal/fetcher/fetchertest"
	"github.com/sells-group/obt-cli/internal/obt/obttest"
)

func TestSheetsCmd_ListsInOrder(t *testing.T) {
	cfg = defaultConfig()
	sheetsWorkbook = fetchertest.WriteXLSX(t, obttest.Sheets()...)
	defer func() { sheetsWorkbook = "" }()

	var buf bytes.Buffer
	sheetsCmd.SetOut(&buf)
	defer sheetsCmd.SetOut(nil)

	require.NoError(t, sheetsCmd.RunE(sheetsCmd, nil))
	assert.Equal(t, "1\tCarrier Report\n2\tSherpa Report\n3\tTLD Report\n", buf.String())
}

func TestSheetsCmd_MissingFile(t *testing.T) {
	cfg = defaultConfig()
	sheetsWorkbook = "/nonexistent/book.xlsx"
	defer func() { sheetsWorkbook = "" }()

	err := sheetsCmd.RunE(sheetsCmd, nil)
	require.Error(t, err)
}

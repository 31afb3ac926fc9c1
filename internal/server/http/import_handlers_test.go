package httpserver

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")), 0o644))
}

func TestRunImportSingleLayout(t *testing.T) {
	f := newFixture(t)
	writeCSV(t, f.server.csvDir, "Hefter.csv",
		"Unnamed: 1,Unnamed: 2,Unnamed: 3,Unnamed: 4",
		"Brudeferden i Hardanger,Halfdan Kjerulf,1815 - 1868,Hefte 3",
	)

	rec := f.request(t, http.MethodPost, "/api/v1/imports", `{"layout": "Hefter"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body runImportResponse
	decodeResponse(t, rec, &body)
	require.Len(t, body.Results, 1)
	assert.Equal(t, 1, body.Results[0].Imported)
	assert.Equal(t, 1, body.Results[0].People)

	// Lock released after the run.
	assert.False(t, f.db.lockHeld)
}

func TestRunImportAllLayouts(t *testing.T) {
	f := newFixture(t)
	writeCSV(t, f.server.csvDir, "Hefter.csv",
		"Unnamed: 1,Unnamed: 2,Unnamed: 3,Unnamed: 4",
		"Brudeferden i Hardanger,Halfdan Kjerulf,1815 - 1868,Hefte 3",
	)
	writeCSV(t, f.server.csvDir, "Allsanger.csv",
		"Tittel,Toneart,Komponist,Unnamed: 8,Tekstforfatter,Unnamed: 11,Antall sider",
		"Bro bro brille,C,Edvard Grieg,1843-1907,Henrik Ibsen,1828 - 1906,4",
	)

	rec := f.request(t, http.MethodPost, "/api/v1/imports", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body runImportResponse
	decodeResponse(t, rec, &body)
	// Only the layouts whose files exist produce results.
	require.Len(t, body.Results, 2)
}

func TestRunImportUnknownLayout(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodPost, "/api/v1/imports", `{"layout": "Nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunImportMissingFile(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodPost, "/api/v1/imports", `{"layout": "Posca"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, f.db.lockHeld)
}

func TestRunImportLockHeld(t *testing.T) {
	f := newFixture(t)
	f.db.lockHeld = true

	rec := f.request(t, http.MethodPost, "/api/v1/imports", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	// The lock belongs to the other import and is not released by us.
	assert.True(t, f.db.lockHeld)
}

func TestRunImportIdempotent(t *testing.T) {
	f := newFixture(t)
	writeCSV(t, f.server.csvDir, "Hefter.csv",
		"Unnamed: 1,Unnamed: 2,Unnamed: 3,Unnamed: 4",
		"Brudeferden i Hardanger,Halfdan Kjerulf,1815 - 1868,Hefte 3",
	)

	rec := f.request(t, http.MethodPost, "/api/v1/imports", `{"layout": "Hefter"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodPost, "/api/v1/imports", `{"layout": "Hefter"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body runImportResponse
	decodeResponse(t, rec, &body)
	require.Len(t, body.Results, 1)
	assert.Equal(t, 0, body.Results[0].Imported)
	assert.Equal(t, 1, body.Results[0].Skipped)
}

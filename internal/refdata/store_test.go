package refdata_test

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larsenwood/easy-eea/internal/refdata"
)

// writeDataDir writes a station file and a fare file into a temp directory
// and returns its path. Fixtures are keyed maps so individual tests can
// express just the rows they care about.
func writeDataDir(t *testing.T, stations []map[string]any, fares map[string]map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	writeJSON(t, filepath.Join(dir, "stations_origin_merged.json"), stations)
	writeJSON(t, filepath.Join(dir, "travels.json"), fares)
	return dir
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o644))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// defaultStations covers the two endpoints used by most fare tests.
// "Paris Gare de Lyon" is aliased under two service names to exercise the
// alias-set origin match.
func defaultStations() []map[string]any {
	return []map[string]any{
		{
			"id":                  "stop_area:SNCF:87686006",
			"name":                "Paris Gare de Lyon",
			"service_public_name": []string{"Paris Gare de Lyon", "Paris (intramuros)"},
		},
		{
			"id":                  "stop_area:SNCF:87722025",
			"name":                "Lyon Part-Dieu",
			"service_public_name": []string{"Lyon"},
		},
	}
}

func newStore(t *testing.T, dir string) *refdata.Store {
	t.Helper()
	return refdata.NewStore(dir, refdata.DefaultTTL, discardLogger())
}

// ---- ResolveFare -----------------------------------------------------------

func TestResolveFare_NoMatchingRows(t *testing.T) {
	dir := writeDataDir(t, defaultStations(), map[string]map[string]string{
		"1": {"origine": "Marseille", "destination": "Lyon", "service": "TGV", "classe2": "30", "classe1": "50"},
	})
	store := newStore(t, dir)

	second, first, err := store.ResolveFare("Paris Gare de Lyon", "Lyon Part-Dieu", "TGV INOUI")

	require.NoError(t, err)
	assert.Zero(t, second)
	assert.Zero(t, first)
}

func TestResolveFare_SingleRow(t *testing.T) {
	dir := writeDataDir(t, defaultStations(), map[string]map[string]string{
		"1": {"origine": "Paris (intramuros)", "destination": "Lyon", "service": "TGV", "classe2": "45", "classe1": "75"},
	})
	store := newStore(t, dir)

	second, first, err := store.ResolveFare("paris gare de lyon", "Lyon Part-Dieu", "TGV INOUI")

	require.NoError(t, err)
	assert.Equal(t, 45.0, second)
	assert.Equal(t, 75.0, first)
}

func TestResolveFare_PicksMinimumSecondClassFare(t *testing.T) {
	dir := writeDataDir(t, defaultStations(), map[string]map[string]string{
		"a": {"origine": "Paris Gare de Lyon", "destination": "Lyon", "service": "TGV", "classe2": "60", "classe1": "90"},
		"b": {"origine": "Paris (intramuros)", "destination": "Lyon", "service": "TGV", "classe2": "45", "classe1": "75"},
	})
	store := newStore(t, dir)

	second, first, err := store.ResolveFare("Paris Gare de Lyon", "Lyon Part-Dieu", "TGV INOUI")

	require.NoError(t, err)
	// The 45 row wins, and it is that row's first-class fare that comes back.
	assert.Equal(t, 45.0, second)
	assert.Equal(t, 75.0, first)
}

func TestResolveFare_AllNonNumeric(t *testing.T) {
	dir := writeDataDir(t, defaultStations(), map[string]map[string]string{
		"a": {"origine": "Paris Gare de Lyon", "destination": "Lyon", "service": "TGV", "classe2": "NA", "classe1": "90"},
		"b": {"origine": "Paris (intramuros)", "destination": "Lyon", "service": "TGV", "classe2": "n/a", "classe1": "75"},
	})
	store := newStore(t, dir)

	second, first, err := store.ResolveFare("Paris Gare de Lyon", "Lyon Part-Dieu", "TGV INOUI")

	require.NoError(t, err)
	assert.Zero(t, second)
	assert.Zero(t, first)
}

func TestResolveFare_OriginAliasCaseInsensitive(t *testing.T) {
	// The fare table is not consistent about casing; an origin row must match
	// a station alias regardless of case.
	dir := writeDataDir(t, defaultStations(), map[string]map[string]string{
		"1": {"origine": "PARIS (INTRAMUROS)", "destination": "Lyon", "service": "TGV", "classe2": "45", "classe1": "75"},
	})
	store := newStore(t, dir)

	second, first, err := store.ResolveFare("Paris Gare de Lyon", "Lyon Part-Dieu", "TGV INOUI")

	require.NoError(t, err)
	assert.Equal(t, 45.0, second)
	assert.Equal(t, 75.0, first)
}

func TestResolveFare_UnknownOriginStation(t *testing.T) {
	dir := writeDataDir(t, defaultStations(), map[string]map[string]string{
		"1": {"origine": "Paris Gare de Lyon", "destination": "Lyon", "service": "TGV", "classe2": "45", "classe1": "75"},
	})
	store := newStore(t, dir)

	second, first, err := store.ResolveFare("Nowhere", "Lyon Part-Dieu", "TGV INOUI")

	require.NoError(t, err)
	assert.Zero(t, second)
	assert.Zero(t, first)
}

func TestResolveFare_DestinationPrefixMatch(t *testing.T) {
	// The dataset records destination zones; "Lyon (gares TGV)" must match a
	// station whose alias is the prefix "Lyon".
	dir := writeDataDir(t, defaultStations(), map[string]map[string]string{
		"1": {"origine": "Paris Gare de Lyon", "destination": "Lyon (gares TGV)", "service": "TGV", "classe2": "42", "classe1": "70"},
	})
	store := newStore(t, dir)

	second, _, err := store.ResolveFare("Paris Gare de Lyon", "Lyon Part-Dieu", "TGV INOUI")

	require.NoError(t, err)
	assert.Equal(t, 42.0, second)
}

func TestResolveFare_ModeTranslation(t *testing.T) {
	dir := writeDataDir(t, defaultStations(), map[string]map[string]string{
		"1": {"origine": "Paris Gare de Lyon", "destination": "Lyon", "service": "Intercité", "classe2": "28", "classe1": "40"},
	})
	store := newStore(t, dir)

	// "Intercités" (brand name) translates to "Intercité" (fare category).
	second, _, err := store.ResolveFare("Paris Gare de Lyon", "Lyon Part-Dieu", "Intercités")
	require.NoError(t, err)
	assert.Equal(t, 28.0, second)

	// An untranslated mode matches no fare rows at all.
	second, first, err := store.ResolveFare("Paris Gare de Lyon", "Lyon Part-Dieu", "TER")
	require.NoError(t, err)
	assert.Zero(t, second)
	assert.Zero(t, first)
}

func TestResolveFare_MissingDataDir(t *testing.T) {
	store := newStore(t, t.TempDir()) // no files written

	_, _, err := store.ResolveFare("Paris Gare de Lyon", "Lyon Part-Dieu", "TGV INOUI")

	assert.Error(t, err)
}

// ---- TTL behavior ----------------------------------------------------------

func TestStore_ReloadsAfterTTL(t *testing.T) {
	fares := map[string]map[string]string{
		"1": {"origine": "Paris Gare de Lyon", "destination": "Lyon", "service": "TGV", "classe2": "45", "classe1": "75"},
	}
	dir := writeDataDir(t, defaultStations(), fares)

	store := refdata.NewStore(dir, time.Millisecond, discardLogger())

	second, _, err := store.ResolveFare("Paris Gare de Lyon", "Lyon Part-Dieu", "TGV INOUI")
	require.NoError(t, err)
	require.Equal(t, 45.0, second)

	// Rewrite the fare file; after the (tiny) TTL the next lookup must see it.
	fares["1"]["classe2"] = "50"
	writeJSON(t, filepath.Join(dir, "travels.json"), fares)
	time.Sleep(5 * time.Millisecond)

	second, _, err = store.ResolveFare("Paris Gare de Lyon", "Lyon Part-Dieu", "TGV INOUI")
	require.NoError(t, err)
	assert.Equal(t, 50.0, second)
}

func TestStore_ServesCachedDataWithinTTL(t *testing.T) {
	fares := map[string]map[string]string{
		"1": {"origine": "Paris Gare de Lyon", "destination": "Lyon", "service": "TGV", "classe2": "45", "classe1": "75"},
	}
	dir := writeDataDir(t, defaultStations(), fares)

	store := newStore(t, dir) // default 5-minute TTL

	second, _, err := store.ResolveFare("Paris Gare de Lyon", "Lyon Part-Dieu", "TGV INOUI")
	require.NoError(t, err)
	require.Equal(t, 45.0, second)

	// Even deleting the backing files must not disturb a fresh snapshot.
	require.NoError(t, os.Remove(filepath.Join(dir, "travels.json")))

	second, _, err = store.ResolveFare("Paris Gare de Lyon", "Lyon Part-Dieu", "TGV INOUI")
	require.NoError(t, err)
	assert.Equal(t, 45.0, second)
}

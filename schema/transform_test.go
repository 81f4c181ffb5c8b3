package schema

import (
	"strings"
	"testing"
)

func TestTransformStepOrder(t *testing.T) {
	steps := TransformSteps()
	expected := []string{StepFactSongplay, StepDimUsers, StepDimSong, StepDimArtist, StepDimTime}
	if len(steps) != len(expected) {
		t.Fatal("expected ", len(expected), " steps; got ", len(steps))
	}
	for i, s := range steps {
		if s.Name != expected[i] {
			t.Fatal("unexpected step at position ", i, ": ", s.Name)
		}
		if s.SQL == "" {
			t.Fatal("empty SQL for step ", s.Name)
		}
	}
}

func stepSQL(t *testing.T, name string) string {
	t.Helper()
	for _, s := range TransformSteps() {
		if s.Name == name {
			return s.SQL
		}
	}
	t.Fatal("no such step: ", name)
	return ""
}

func TestFactDerivation(t *testing.T) {
	sql := stepSQL(t, StepFactSongplay)
	// Only playback events qualify.
	if !strings.Contains(sql, "se.page = 'NextSong'") {
		t.Fatal("fact derivation must filter on the playback action")
	}
	// Equi-join on title, artist name and duration; duration match is exact.
	for _, pred := range []string{
		"se.song = ss.title",
		"se.artist = ss.artist_name",
		"se.length = ss.duration",
	} {
		if !strings.Contains(sql, pred) {
			t.Fatal("missing join predicate: ", pred)
		}
	}
	// Ambiguous catalog keys are dropped, never multiplied.
	if !strings.Contains(sql, "HAVING COUNT(*) = 1") {
		t.Fatal("fact derivation must discard ambiguous catalog matches")
	}
	// Epoch-millisecond conversion.
	if !strings.Contains(sql, "TIMESTAMP 'epoch' + (se.ts::BIGINT / 1000) * INTERVAL '1 second'") {
		t.Fatal("missing epoch-millisecond timestamp conversion")
	}
}

func TestUsersDimension(t *testing.T) {
	sql := stepSQL(t, StepDimUsers)
	if !strings.Contains(sql, "page = 'NextSong'") {
		t.Fatal("users dimension must only consider playback events")
	}
	// Latest timestamp wins the level tie-break.
	if !strings.Contains(sql, "PARTITION BY user_id ORDER BY ts::BIGINT DESC") {
		t.Fatal("users dimension must rank by latest event timestamp")
	}
	if !strings.Contains(sql, "user_id IS NOT NULL") {
		t.Fatal("users dimension must exclude null user identities")
	}
}

func TestSongDimensionNullKeyExclusionAndDedup(t *testing.T) {
	sql := stepSQL(t, StepDimSong)
	if !strings.Contains(sql, "song_id IS NOT NULL") {
		t.Fatal("song dimension must exclude null song identities")
	}
	// One row per song_id via a deterministic ranking, not insertion order.
	if !strings.Contains(sql, "PARTITION BY song_id ORDER BY year DESC, title, duration") {
		t.Fatal("song dimension must deduplicate deterministically")
	}
}

func TestArtistDimensionNullKeyExclusion(t *testing.T) {
	sql := stepSQL(t, StepDimArtist)
	if !strings.Contains(sql, "artist_id IS NOT NULL") {
		t.Fatal("artist dimension must exclude null artist identities")
	}
	if !strings.Contains(sql, "SELECT DISTINCT artist_id") {
		t.Fatal("artist dimension must select distinct rows")
	}
}

func TestTimeDimensionReadsFactTable(t *testing.T) {
	sql := stepSQL(t, StepDimTime)
	// Strictly derived from the populated fact table, never from staging.
	if !strings.Contains(sql, "FROM songplay") {
		t.Fatal("time dimension must read the fact table")
	}
	if strings.Contains(sql, "staging_") {
		t.Fatal("time dimension must not read staging relations")
	}
	for _, part := range []string{"hour", "day", "week", "month", "year", "dayofweek"} {
		if !strings.Contains(sql, "EXTRACT("+part+" FROM start_time)") {
			t.Fatal("missing derived calendar field: ", part)
		}
	}
}

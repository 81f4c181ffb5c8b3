package schema

// Transform step names, reported by TransformError when a statement fails.
const (
	StepFactSongplay = "fact_songplay"
	StepDimUsers     = "dim_users"
	StepDimSong      = "dim_song"
	StepDimArtist    = "dim_artist"
	StepDimTime      = "dim_time"
)

// TransformStep is one set-based INSERT ... SELECT. Each step reads only from
// relations and writes in a single statement; there is no per-row logic.
type TransformStep struct {
	Name string
	SQL  string
}

// songplayInsert derives the fact table from playback events joined to the song
// catalog on (title, artist name, duration). Duration equality is exact; that is a
// documented limitation of the source data, not a bug. The catalog side is grouped
// on the join key and keys matching more than one catalog row are discarded, so a
// play never multiplies and an ambiguous match is silently dropped.
// start_time = epoch + ts-millis/1000 seconds.
var songplayInsert = `INSERT INTO songplay (start_time, user_id, level, song_id, artist_id, session_id, location, user_agent)
SELECT TIMESTAMP 'epoch' + (se.ts::BIGINT / 1000) * INTERVAL '1 second' AS start_time,
	se.user_id,
	se.level,
	ss.song_id,
	ss.artist_id,
	se.session_id,
	se.location,
	se.user_agent
FROM staging_events se
JOIN (
	SELECT title, artist_name, duration,
		MAX(song_id) AS song_id,
		MAX(artist_id) AS artist_id
	FROM staging_songs
	GROUP BY title, artist_name, duration
	HAVING COUNT(*) = 1
) ss
	ON se.song = ss.title
	AND se.artist = ss.artist_name
	AND se.length = ss.duration
WHERE se.page = 'NextSong'`

// usersInsert deduplicates playback events per user. The level kept is the one on
// the user's most recent event: latest timestamp wins.
var usersInsert = `INSERT INTO users (user_id, first_name, last_name, gender, level)
SELECT user_id, first_name, last_name, gender, level
FROM (
	SELECT user_id, first_name, last_name, gender, level,
		ROW_NUMBER() OVER (PARTITION BY user_id ORDER BY ts::BIGINT DESC) AS rn
	FROM staging_events
	WHERE page = 'NextSong' AND user_id IS NOT NULL
) u
WHERE rn = 1`

// songInsert keeps one row per song_id. Catalog entries can repeat a song_id with
// differing attributes, so the winner is ranked deterministically rather than by
// insertion order.
var songInsert = `INSERT INTO song (song_id, title, artist_id, year, duration)
SELECT song_id, title, artist_id, year, duration
FROM (
	SELECT song_id, title, artist_id, year, duration,
		ROW_NUMBER() OVER (PARTITION BY song_id ORDER BY year DESC, title, duration) AS rn
	FROM staging_songs
	WHERE song_id IS NOT NULL
) s
WHERE rn = 1`

var artistInsert = `INSERT INTO artist (artist_id, name, location, latitude, longitude)
SELECT DISTINCT artist_id, artist_name, artist_location, artist_latitude, artist_longitude
FROM staging_songs
WHERE artist_id IS NOT NULL`

// timeInsert reads the populated fact table, so it must run after songplayInsert.
var timeInsert = `INSERT INTO time (start_time, hour, day, week, month, year, weekday)
SELECT DISTINCT start_time,
	EXTRACT(hour FROM start_time),
	EXTRACT(day FROM start_time),
	EXTRACT(week FROM start_time),
	EXTRACT(month FROM start_time),
	EXTRACT(year FROM start_time),
	EXTRACT(dayofweek FROM start_time)
FROM songplay`

// TransformSteps returns the five steps in execution order. The fact derivation
// runs first and the time dimension last; the order must not change.
func TransformSteps() []TransformStep {
	return []TransformStep{
		{StepFactSongplay, songplayInsert},
		{StepDimUsers, usersInsert},
		{StepDimSong, songInsert},
		{StepDimArtist, artistInsert},
		{StepDimTime, timeInsert},
	}
}

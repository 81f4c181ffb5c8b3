// Package schema declares the warehouse relations and the SQL that rebuilds them:
// DDL for the two staging tables and the star schema, the Redshift COPY statements
// that land raw JSON into staging, and the five transform statements that populate
// the fact and dimension tables.
package schema

import (
	"fmt"

	"github.com/cevaris/ordered_map"
)

// Relation names. Staging relations are reloaded verbatim each run; the fact and
// dimension relations are derived from them.
const (
	TableStagingEvents = "staging_events"
	TableStagingSongs  = "staging_songs"
	TableSongplay      = "songplay"
	TableUsers         = "users"
	TableSong          = "song"
	TableArtist        = "artist"
	TableTime          = "time"
)

// Relation couples a table name with the DDL that creates it.
type Relation struct {
	Name      string
	CreateDDL string
}

var stagingEventsCreate = `CREATE TABLE IF NOT EXISTS staging_events (
	artist VARCHAR(255),
	auth VARCHAR(50),
	first_name VARCHAR(255),
	gender VARCHAR(1),
	item_session INTEGER,
	last_name VARCHAR(255),
	length DOUBLE PRECISION,
	level VARCHAR(50),
	location VARCHAR(255),
	method VARCHAR(25),
	page VARCHAR(35),
	registration VARCHAR(50),
	session_id BIGINT,
	song VARCHAR(255),
	status INTEGER,
	ts VARCHAR(50),
	user_agent VARCHAR(255),
	user_id INTEGER)`

var stagingSongsCreate = `CREATE TABLE IF NOT EXISTS staging_songs (
	song_id VARCHAR(100),
	num_songs INTEGER,
	artist_id VARCHAR(100),
	artist_latitude DOUBLE PRECISION,
	artist_longitude DOUBLE PRECISION,
	artist_location VARCHAR(255),
	artist_name VARCHAR(255),
	title VARCHAR(255),
	duration DOUBLE PRECISION,
	year INTEGER)`

var songplayCreate = `CREATE TABLE IF NOT EXISTS songplay (
	songplay_id INT IDENTITY(0,1) PRIMARY KEY,
	start_time TIMESTAMP,
	user_id INTEGER NOT NULL,
	level VARCHAR(50),
	song_id VARCHAR(100),
	artist_id VARCHAR(100),
	session_id INTEGER,
	location VARCHAR(255),
	user_agent TEXT)`

var usersCreate = `CREATE TABLE IF NOT EXISTS users (
	user_id INTEGER PRIMARY KEY,
	first_name VARCHAR(255) NOT NULL,
	last_name VARCHAR(255) NOT NULL,
	gender VARCHAR(1),
	level VARCHAR(50))`

var songCreate = `CREATE TABLE IF NOT EXISTS song (
	song_id VARCHAR(100) PRIMARY KEY,
	title VARCHAR(255),
	artist_id VARCHAR(255),
	year INTEGER,
	duration DOUBLE PRECISION)`

var artistCreate = `CREATE TABLE IF NOT EXISTS artist (
	artist_id VARCHAR(100) PRIMARY KEY,
	name VARCHAR(255),
	location VARCHAR(255),
	latitude DOUBLE PRECISION,
	longitude DOUBLE PRECISION)`

var timeCreate = `CREATE TABLE IF NOT EXISTS time (
	start_time TIMESTAMP PRIMARY KEY,
	hour INTEGER,
	day INTEGER,
	week INTEGER,
	month INTEGER,
	year INTEGER,
	weekday INTEGER)`

// Relations returns the seven warehouse relations keyed by name in declared order:
// staging first, then the fact table, then the dimensions.
func Relations() *ordered_map.OrderedMap {
	om := ordered_map.NewOrderedMap()
	for _, r := range []Relation{
		{TableStagingEvents, stagingEventsCreate},
		{TableStagingSongs, stagingSongsCreate},
		{TableSongplay, songplayCreate},
		{TableUsers, usersCreate},
		{TableSong, songCreate},
		{TableArtist, artistCreate},
		{TableTime, timeCreate},
	} {
		om.Set(r.Name, r)
	}
	return om
}

// DropStatements returns one DROP per relation in declared order.
// Dropping a relation that does not exist is not an error.
func DropStatements() []string {
	stmts := make([]string, 0, 7)
	iter := Relations().IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		stmts = append(stmts, fmt.Sprintf("DROP TABLE IF EXISTS %v", kv.Key.(string)))
	}
	return stmts
}

// CreateStatements returns one CREATE per relation in declared order.
func CreateStatements() []string {
	stmts := make([]string, 0, 7)
	iter := Relations().IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		stmts = append(stmts, kv.Value.(Relation).CreateDDL)
	}
	return stmts
}

package actions

import (
	"strings"
	"testing"

	"github.com/playlake/starload/logger"
	"github.com/playlake/starload/schema"
	"github.com/playlake/starload/stats"
	"github.com/playlake/starload/warehouse"
)

func newTestLoadConfig() *LoadStagingConfig {
	return &LoadStagingConfig{
		TargetConnection:  "target",
		EventLogUri:       "s3://udacity-dend/log_data",
		CatalogUri:        "s3://udacity-dend/song_data",
		CatalogMappingUri: "s3://udacity-dend/log_json_path.json",
		IamRole:           "arn:aws:iam::123456789012:role/loader",
		LogLevel:          "error",
	}
}

// drainSQL collects everything the mock connection recorded so far.
func drainSQL(ch chan string) []string {
	retval := make([]string, 0, len(ch))
	for {
		select {
		case s := <-ch:
			retval = append(retval, s)
		default:
			return retval
		}
	}
}

func TestResetSchemaStatementOrder(t *testing.T) {
	log := logger.NewLogger("starload", "error", true)
	db, ch := warehouse.NewMockConnection(log)
	st := stats.NewRunStats(log)
	if err := resetSchema(log, db, st); err != nil {
		t.Fatal("unexpected error: ", err)
	}
	got := drainSQL(ch)
	if len(got) != 14 {
		t.Fatal("expected 14 statements; got ", len(got))
	}
	for i := 0; i < 7; i++ {
		if !strings.HasPrefix(got[i], "DROP TABLE IF EXISTS") {
			t.Fatalf("statement %v should be a drop: %v", i, got[i])
		}
	}
	for i := 7; i < 14; i++ {
		if !strings.HasPrefix(got[i], "CREATE TABLE IF NOT EXISTS") {
			t.Fatalf("statement %v should be a create: %v", i, got[i])
		}
	}
	// Staging tables come first in the declared order.
	if !strings.Contains(got[7], schema.TableStagingEvents) {
		t.Fatal("expected first create to target staging_events; got ", got[7])
	}
}

func TestResetSchemaIsIdempotent(t *testing.T) {
	log := logger.NewLogger("starload", "error", true)
	db, ch := warehouse.NewMockConnection(log)
	st := stats.NewRunStats(log)
	if err := resetSchema(log, db, st); err != nil {
		t.Fatal(err)
	}
	first := drainSQL(ch)
	if err := resetSchema(log, db, st); err != nil {
		t.Fatal(err)
	}
	second := drainSQL(ch)
	if len(first) != len(second) {
		t.Fatal("expected identical statement counts across reruns")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("statement %v differs across reruns", i)
		}
	}
}

func TestResetSchemaErrorAborts(t *testing.T) {
	log := logger.NewLogger("starload", "error", true)
	db, ch := warehouse.NewMockConnection(log)
	db.FailPattern = "CREATE TABLE IF NOT EXISTS songplay"
	st := stats.NewRunStats(log)
	err := resetSchema(log, db, st)
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*SchemaError); !ok {
		t.Fatal("expected SchemaError; got ", err)
	}
	if FailedStepName(err) != "reset_schema" {
		t.Fatal("unexpected failed step: ", FailedStepName(err))
	}
	got := drainSQL(ch)
	// 7 drops and 2 creates succeed before songplay's create fails.
	if len(got) != 9 {
		t.Fatal("expected 9 statements before the failure; got ", len(got))
	}
	// The step is closed off rather than left running forever.
	s := st.GetStats()
	if len(s) != 1 || s[0].StatusText != "failed" {
		t.Fatalf("expected the reset step to be marked failed: %+v", s)
	}
}

func TestLoadStagingOrder(t *testing.T) {
	log := logger.NewLogger("starload", "error", true)
	db, ch := warehouse.NewMockConnection(log)
	db.RowCount = 8056
	st := stats.NewRunStats(log)
	copies, err := buildCopyConfigs(newTestLoadConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := loadStaging(log, db, copies, st); err != nil {
		t.Fatal("unexpected error: ", err)
	}
	got := drainSQL(ch)
	if len(got) != 2 {
		t.Fatal("expected 2 COPY statements; got ", len(got))
	}
	if !strings.HasPrefix(got[0], "COPY staging_events") {
		t.Fatal("expected the event log to load first; got ", got[0])
	}
	if !strings.HasPrefix(got[1], "COPY staging_songs") {
		t.Fatal("expected the catalog to load second; got ", got[1])
	}
	if !strings.Contains(got[0], "JSON 's3://udacity-dend/log_json_path.json'") {
		t.Fatal("event log COPY should use the JSONPaths mapping: ", got[0])
	}
	if !strings.Contains(got[1], "JSON 'auto'") {
		t.Fatal("catalog COPY should use json auto: ", got[1])
	}
	// Row counts land in the stats.
	s := st.GetStats()
	if len(s) != 2 || s[0].RowsAffected != 8056 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func TestLoadStagingFailFast(t *testing.T) {
	log := logger.NewLogger("starload", "error", true)
	db, ch := warehouse.NewMockConnection(log)
	db.FailPattern = "COPY staging_events"
	st := stats.NewRunStats(log)
	copies, err := buildCopyConfigs(newTestLoadConfig())
	if err != nil {
		t.Fatal(err)
	}
	err = loadStaging(log, db, copies, st)
	if err == nil {
		t.Fatal("expected an error")
	}
	loadErr, ok := err.(*LoadError)
	if !ok {
		t.Fatal("expected LoadError; got ", err)
	}
	if loadErr.Relation != schema.TableStagingEvents {
		t.Fatal("unexpected failing relation: ", loadErr.Relation)
	}
	// The mock cannot serve stl_load_errors, so the count is unknown.
	if loadErr.RejectedRows != -1 {
		t.Fatal("expected unknown rejected-row count; got ", loadErr.RejectedRows)
	}
	if FailedStepName(err) != "load_staging_events" {
		t.Fatal("unexpected failed step: ", FailedStepName(err))
	}
	// The second COPY must not have been attempted.
	if got := drainSQL(ch); len(got) != 0 {
		t.Fatal("expected no statements after the failed COPY; got ", got)
	}
	// The step is closed off rather than left running forever.
	s := st.GetStats()
	if len(s) != 1 || s[0].StatusText != "failed" || s[0].RowsAffected != -1 {
		t.Fatalf("expected the load step to be marked failed: %+v", s)
	}
}

func TestTransformStepOrder(t *testing.T) {
	log := logger.NewLogger("starload", "error", true)
	db, ch := warehouse.NewMockConnection(log)
	st := stats.NewRunStats(log)
	if err := transformStarSchema(log, db, st); err != nil {
		t.Fatal("unexpected error: ", err)
	}
	got := drainSQL(ch)
	if len(got) != 5 {
		t.Fatal("expected 5 transform statements; got ", len(got))
	}
	// The fact table must populate before the time dimension reads it.
	if !strings.HasPrefix(got[0], "INSERT INTO songplay") {
		t.Fatal("expected the fact step first; got ", got[0])
	}
	if !strings.HasPrefix(got[4], "INSERT INTO time") {
		t.Fatal("expected the time step last; got ", got[4])
	}
}

func TestTransformFailureNamesStep(t *testing.T) {
	log := logger.NewLogger("starload", "error", true)
	db, ch := warehouse.NewMockConnection(log)
	db.FailPattern = "INSERT INTO users"
	st := stats.NewRunStats(log)
	err := transformStarSchema(log, db, st)
	if err == nil {
		t.Fatal("expected an error")
	}
	tErr, ok := err.(*TransformError)
	if !ok {
		t.Fatal("expected TransformError; got ", err)
	}
	if tErr.Step != schema.StepDimUsers {
		t.Fatal("unexpected failing step: ", tErr.Step)
	}
	// Only the fact step ran before the failure.
	if got := drainSQL(ch); len(got) != 1 {
		t.Fatal("expected 1 statement before the failure; got ", len(got))
	}
	// The fact step completed; the users step is closed off as failed.
	s := st.GetStats()
	if len(s) != 2 || s[0].StatusText != "complete" || s[1].StatusText != "failed" {
		t.Fatalf("expected complete then failed step stats: %+v", s)
	}
}

func TestRunPipelineStatementCount(t *testing.T) {
	log := logger.NewLogger("starload", "error", true)
	db, ch := warehouse.NewMockConnection(log)
	st := stats.NewRunStats(log)
	copies, err := buildCopyConfigs(newTestLoadConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := runPipeline(log, db, copies, st); err != nil {
		t.Fatal("unexpected error: ", err)
	}
	got := drainSQL(ch)
	// 7 drops + 7 creates + 2 copies + 5 transforms.
	if len(got) != 21 {
		t.Fatal("expected 21 statements for a full run; got ", len(got))
	}
	s := st.GetStats()
	if len(s) != 8 {
		t.Fatal("expected 8 step stats; got ", len(s))
	}
	if s[len(s)-1].StepName != schema.StepDimTime {
		t.Fatal("expected the time step to finish last; got ", s[len(s)-1].StepName)
	}
}

func TestRunPipelineStopsAfterLoadFailure(t *testing.T) {
	log := logger.NewLogger("starload", "error", true)
	db, ch := warehouse.NewMockConnection(log)
	db.FailPattern = "COPY staging_songs"
	st := stats.NewRunStats(log)
	copies, err := buildCopyConfigs(newTestLoadConfig())
	if err != nil {
		t.Fatal(err)
	}
	err = runPipeline(log, db, copies, st)
	if err == nil {
		t.Fatal("expected an error")
	}
	if FailedStepName(err) != "load_staging_songs" {
		t.Fatal("unexpected failed step: ", FailedStepName(err))
	}
	got := drainSQL(ch)
	// 14 DDL statements plus the successful first COPY; no transforms.
	if len(got) != 15 {
		t.Fatal("expected 15 statements; got ", len(got))
	}
	for _, s := range got {
		if strings.HasPrefix(s, "INSERT INTO") {
			t.Fatal("no transform statement should run after a failed load: ", s)
		}
	}
}

func TestBuildCopyConfigsValidation(t *testing.T) {
	cfg := newTestLoadConfig()
	cfg.IamRole = ""
	if _, err := buildCopyConfigs(cfg); err == nil {
		t.Fatal("expected a validation error for a missing IAM role")
	}
}

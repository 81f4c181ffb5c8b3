package actions

import (
	"fmt"

	"github.com/playlake/starload/helper"
	"github.com/playlake/starload/logger"
	"github.com/playlake/starload/schema"
	"github.com/playlake/starload/stats"
	"github.com/playlake/starload/warehouse"
)

type ResetSchemaConfig struct {
	Connections      ConnectionLoader
	TargetConnection string `errorTxt:"target <connection>" mandatory:"yes"`
	DryRun           bool
	LogLevel         string `errorTxt:"log level" mandatory:"yes"`
	StackDumpOnPanic bool
}

// RunResetSchema drops and recreates the seven warehouse relations.
// Safe to run repeatedly: the result is always an identical empty schema.
func RunResetSchema(cfg *ResetSchemaConfig) error {
	log := logger.NewLogger("starload", cfg.LogLevel, cfg.StackDumpOnPanic)
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return err
	}
	if cfg.DryRun { // if the user wants the SQL on STDOUT...
		for _, s := range schema.DropStatements() {
			fmt.Println(s)
		}
		for _, s := range schema.CreateStatements() {
			fmt.Println(s)
		}
		return nil
	}
	conn, err := cfg.Connections.LoadConnection(cfg.TargetConnection)
	if err != nil {
		return err
	}
	db, err := warehouse.OpenDbConnection(log, conn)
	if err != nil {
		return err
	}
	defer db.Close()
	st := stats.NewRunStats(log)
	err = resetSchema(log, db, st)
	st.LogStats()
	return err
}

// resetSchema issues the DROP then CREATE statements one at a time over db.
// The first DDL failure aborts the whole reset.
func resetSchema(log logger.Logger, db warehouse.Connector, st *stats.RunStatsManager) error {
	w := st.AddStepWatcher("reset_schema")
	w.Start()
	for _, stmt := range schema.DropStatements() {
		log.Debug("executing: ", stmt)
		if _, err := db.Exec(stmt); err != nil {
			w.Fail()
			return &SchemaError{Statement: stmt, Err: err}
		}
	}
	for _, stmt := range schema.CreateStatements() {
		log.Debug("executing: ", stmt)
		if _, err := db.Exec(stmt); err != nil {
			w.Fail()
			return &SchemaError{Statement: stmt, Err: err}
		}
	}
	w.Stop(0)
	log.Info("Schema reset complete.")
	return nil
}

package actions

import (
	"fmt"

	"github.com/playlake/starload/helper"
	"github.com/playlake/starload/logger"
	"github.com/playlake/starload/schema"
	"github.com/playlake/starload/stats"
	"github.com/playlake/starload/warehouse"
)

type TransformConfig struct {
	Connections      ConnectionLoader
	TargetConnection string `errorTxt:"target <connection>" mandatory:"yes"`
	DryRun           bool
	LogLevel         string `errorTxt:"log level" mandatory:"yes"`
	StackDumpOnPanic bool
}

// RunTransform populates the fact and dimension tables from the staging tables
// using the five set-based transform steps.
func RunTransform(cfg *TransformConfig) error {
	log := logger.NewLogger("starload", cfg.LogLevel, cfg.StackDumpOnPanic)
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return err
	}
	if cfg.DryRun { // if the user wants the SQL on STDOUT...
		for _, step := range schema.TransformSteps() {
			fmt.Println(step.SQL)
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
	err = transformStarSchema(log, db, st)
	st.LogStats()
	return err
}

// transformStarSchema executes the transform steps in declared order.
// The fact step must run before the time dimension step; the statement order
// in schema.TransformSteps guarantees it. First error aborts the run.
func transformStarSchema(log logger.Logger, db warehouse.Connector, st *stats.RunStatsManager) error {
	for _, step := range schema.TransformSteps() {
		w := st.AddStepWatcher(step.Name)
		w.Start()
		log.Info("Running transform step ", step.Name)
		res, err := db.Exec(step.SQL)
		if err != nil {
			w.Fail()
			return &TransformError{Step: step.Name, Err: err}
		}
		rows, err := res.RowsAffected()
		if err != nil {
			log.Debug("unable to fetch rows affected: ", err)
			rows = -1
		}
		w.Stop(rows)
	}
	log.Info("Transform complete.")
	return nil
}

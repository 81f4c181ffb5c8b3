package actions

import (
	"fmt"

	"github.com/playlake/starload/helper"
	"github.com/playlake/starload/logger"
	"github.com/playlake/starload/schema"
	"github.com/playlake/starload/stats"
	"github.com/playlake/starload/warehouse"
)

// PipelineConfig carries the whole configuration surface of one batch run.
// There are deliberately no retry, batch-size or schema-name options.
type PipelineConfig struct {
	Connections       ConnectionLoader
	TargetConnection  string `errorTxt:"target <connection>" mandatory:"yes"`
	EventLogUri       string `errorTxt:"event log S3 URI" mandatory:"yes"`
	CatalogUri        string `errorTxt:"song catalog S3 URI" mandatory:"yes"`
	CatalogMappingUri string `errorTxt:"event log JSONPaths S3 URI" mandatory:"yes"`
	IamRole           string `errorTxt:"IAM role ARN" mandatory:"yes"`
	BucketRegion      string
	SkipPreflight     bool
	DryRun            bool
	LogLevel          string `errorTxt:"log level" mandatory:"yes"`
	StackDumpOnPanic  bool
}

// RunPipeline executes one full batch run: reset schema, load staging,
// transform. It stops at the first error; the returned error names the failing
// step via FailedStepName.
func RunPipeline(cfg *PipelineConfig) error {
	log := logger.NewLogger("starload", cfg.LogLevel, cfg.StackDumpOnPanic)
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return err
	}
	loadCfg := pipelineLoadConfig(cfg)
	copies, err := buildCopyConfigs(loadCfg)
	if err != nil {
		return err
	}
	if cfg.DryRun { // if the user wants the SQL on STDOUT...
		for _, s := range schema.DropStatements() {
			fmt.Println(s)
		}
		for _, s := range schema.CreateStatements() {
			fmt.Println(s)
		}
		for _, c := range copies {
			fmt.Println(c.RedactedSQL())
		}
		for _, step := range schema.TransformSteps() {
			fmt.Println(step.SQL)
		}
		return nil
	}
	st := stats.NewRunStats(log)
	err = executePipeline(log, cfg, copies, st)
	st.LogStats()
	if err != nil {
		log.Error("Pipeline failed at step ", FailedStepName(err), ": ", err)
		return err
	}
	log.Info("Pipeline complete.")
	return nil
}

// executePipeline runs preflight, opens the warehouse connection and executes
// the batch sequence, recording step stats into st. Used by both the CLI entry
// point and the web server's async run launcher.
func executePipeline(log logger.Logger, cfg *PipelineConfig, copies []schema.CopyConfig, st *stats.RunStatsManager) error {
	if !cfg.SkipPreflight { // if we should check the S3 sources before touching the warehouse...
		if err := preflightSources(log, pipelineLoadConfig(cfg)); err != nil {
			return err
		}
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
	return runPipeline(log, db, copies, st)
}

// runPipeline is the full batch sequence over an open connection.
func runPipeline(log logger.Logger, db warehouse.Connector, copies []schema.CopyConfig, st *stats.RunStatsManager) error {
	if err := resetSchema(log, db, st); err != nil {
		return err
	}
	if err := loadStaging(log, db, copies, st); err != nil {
		return err
	}
	return transformStarSchema(log, db, st)
}

func pipelineLoadConfig(cfg *PipelineConfig) *LoadStagingConfig {
	return &LoadStagingConfig{
		Connections:       cfg.Connections,
		TargetConnection:  cfg.TargetConnection,
		EventLogUri:       cfg.EventLogUri,
		CatalogUri:        cfg.CatalogUri,
		CatalogMappingUri: cfg.CatalogMappingUri,
		IamRole:           cfg.IamRole,
		BucketRegion:      cfg.BucketRegion,
		SkipPreflight:     cfg.SkipPreflight,
		DryRun:            cfg.DryRun,
		LogLevel:          cfg.LogLevel,
		StackDumpOnPanic:  cfg.StackDumpOnPanic,
	}
}

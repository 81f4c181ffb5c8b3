package actions

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/playlake/starload/aws/s3"
	"github.com/playlake/starload/helper"
	"github.com/playlake/starload/logger"
	"github.com/playlake/starload/schema"
	"github.com/playlake/starload/stats"
	"github.com/playlake/starload/warehouse"
)

type LoadStagingConfig struct {
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

// RunLoadStaging bulk-copies the event log then the song catalog into their
// staging tables. The second COPY is not attempted when the first fails.
func RunLoadStaging(cfg *LoadStagingConfig) error {
	log := logger.NewLogger("starload", cfg.LogLevel, cfg.StackDumpOnPanic)
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return err
	}
	copies, err := buildCopyConfigs(cfg)
	if err != nil {
		return err
	}
	if cfg.DryRun { // if the user wants the SQL on STDOUT...
		for _, c := range copies {
			fmt.Println(c.RedactedSQL())
		}
		return nil
	}
	if !cfg.SkipPreflight { // if we should check the S3 sources before touching the warehouse...
		if err := preflightSources(log, cfg); err != nil {
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
	st := stats.NewRunStats(log)
	err = loadStaging(log, db, copies, st)
	st.LogStats()
	return err
}

// buildCopyConfigs validates and renders the two COPY configs in load order:
// events first, catalog second.
func buildCopyConfigs(cfg *LoadStagingConfig) ([]schema.CopyConfig, error) {
	copies := []schema.CopyConfig{
		{
			Relation:   schema.TableStagingEvents,
			SourceUri:  cfg.EventLogUri,
			IamRole:    cfg.IamRole,
			JsonFormat: cfg.CatalogMappingUri, // the event log needs an explicit JSONPaths mapping.
			Region:     cfg.BucketRegion,
		},
		{
			Relation:   schema.TableStagingSongs,
			SourceUri:  cfg.CatalogUri,
			IamRole:    cfg.IamRole,
			JsonFormat: schema.JSONFormatAuto, // catalog keys match the staging columns.
			Region:     cfg.BucketRegion,
		},
	}
	for _, c := range copies {
		if err := helper.ValidateStructIsPopulated(&c); err != nil {
			return nil, err
		}
	}
	return copies, nil
}

// loadStaging executes the COPY statements one at a time over db, fail-fast.
// On COPY failure the rejected record count is fetched from stl_load_errors on
// a best-effort basis and carried in the returned LoadError.
func loadStaging(log logger.Logger, db warehouse.Connector, copies []schema.CopyConfig, st *stats.RunStatsManager) error {
	for _, c := range copies {
		w := st.AddStepWatcher("load_" + c.Relation)
		w.Start()
		log.Info("Loading ", c.Relation, " from ", c.SourceUri)
		log.Debug("executing: ", c.RedactedSQL()) // never log the credential.
		res, err := db.Exec(c.SQL())
		if err != nil {
			w.Fail()
			rejected, ok := warehouse.RedshiftCopyRejectCount(log, db)
			if !ok {
				rejected = -1
			}
			return &LoadError{Relation: c.Relation, RejectedRows: rejected, Err: err}
		}
		rows, err := res.RowsAffected()
		if err != nil { // some drivers cannot count COPY rows...
			log.Debug("unable to fetch rows affected: ", err)
			rows = -1
		}
		w.Stop(rows)
	}
	return nil
}

// preflightSources checks that both source prefixes contain at least one object
// and that the JSONPaths document exists, before any COPY is issued.
func preflightSources(log logger.Logger, cfg *LoadStagingConfig) error {
	for _, uri := range []string{cfg.EventLogUri, cfg.CatalogUri} {
		b, err := s3.ParseDSN(uri, cfg.BucketRegion)
		if err != nil {
			return err
		}
		client := s3.NewBasicClient(b.Name, b.Region, "")
		keys, err := client.List(b.Prefix)
		if err != nil {
			return errors.Wrapf(err, "error listing %v", uri)
		}
		if len(keys) == 0 {
			return fmt.Errorf("no objects found under %v", uri)
		}
		log.Debug("found ", len(keys), " object(s) under ", uri)
	}
	b, err := s3.ParseDSN(cfg.CatalogMappingUri, cfg.BucketRegion)
	if err != nil {
		return err
	}
	client := s3.NewBasicClient(b.Name, b.Region, "")
	if _, err := client.Get(b.Prefix); err != nil {
		if err == s3.ErrKeyNotFound {
			return fmt.Errorf("JSONPaths document %v does not exist", cfg.CatalogMappingUri)
		}
		return errors.Wrapf(err, "error fetching JSONPaths document %v", cfg.CatalogMappingUri)
	}
	return nil
}

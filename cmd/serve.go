package cmd

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/playlake/starload/actions"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a web service exposing schema reset and pipeline runs",
	Long: `Start a web service exposing the batch operations over HTTP:

  POST /schema/reset          reset the star schema synchronously
  POST /runs                  launch a pipeline run (JSON body overrides flags)
  GET  /runs                  list launched runs
  GET  /runs/{runId}/status   poll a run's outcome and failed step
  GET  /runs/{runId}/stats    per-step row counts and timings
  GET  /health                liveness probe
  GET  /stop                  shut the server down

The server does not serialize runs; callers must.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serveConfig.Connections = getConnectionLoader()
		serveConfig.StackDumpOnPanic = stackDumpOnPanic
		serveConfig.Pipeline = &servePipelineCfg
		servePipelineCfg.Connections = serveConfig.Connections
		return actions.RunWebServer(&serveConfig)
	},
}

var serveConfig = actions.WebServerConfig{
	LogLevel: "info",
	Scheme:   "http",
	Addr:     net.IP{0, 0, 0, 0},
	Port:     8080,
}

var servePipelineCfg = actions.PipelineConfig{}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().SortFlags = false
	serveCmd.Flags().IPVarP(&serveConfig.Addr, "address", "a", net.IP{0, 0, 0, 0}, "Address to listen on")
	switches.addFlag(serveCmd, &serveConfig.Port, "port", "8080", false, "")
	switches.addFlag(serveCmd, &serveConfig.LogLevel, "log-level", "info", false, "")
	// Pipeline defaults applied to launched runs; all optional here since the
	// POST /runs body can supply or override them.
	switches.addFlag(serveCmd, &servePipelineCfg.TargetConnection, "target", defaultTargetConnection(), false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.EventLogUri, "event-log-uri", "", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.CatalogUri, "catalog-uri", "", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.CatalogMappingUri, "catalog-mapping-uri", "", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.IamRole, "iam-role", "", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.BucketRegion, "bucket-region", "", false, "")
	switches.addFlag(serveCmd, &servePipelineCfg.SkipPreflight, "skip-preflight", "false", false, "")
}

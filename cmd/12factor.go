package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/playlake/starload/actions"
	"github.com/playlake/starload/config"
	c "github.com/playlake/starload/constants"
	"github.com/playlake/starload/helper"
	"github.com/playlake/starload/logger"
	"github.com/playlake/starload/warehouse"
)

// init will be called first due to the lexical order in which these functions are executed.
// This ensures the value of twelveFactorMode is set such that other init() functions that
// configure Cobra can do the job of processing all environment variables that would contain
// the equivalent of the CLI flag structures used by Starload's actions.
func init() {
	setupTwelveFactorMode()
}

// setupTwelveFactorMode will enable or disable 12 factor mode based on environment variable.
func setupTwelveFactorMode() {
	mode := os.Getenv(envVarTwelveFactorMode)
	if mode != "" { // if variable for 12factor mode is set and we should read env vars to determine actions...
		twelveFactorMode = true
		if strings.ToLower(mode) == "lambda" {
			lambdaMode = true
		}
	} else { // else 12factor mode should be off...
		twelveFactorMode = false // explicitly turn off this mode since tests may have turned it on while others require it off.
	}
}

const (
	envVarTwelveFactorMode      = c.EnvVarPrefix + "_" + "12FACTOR_MODE"
	envVarCommand               = c.EnvVarPrefix + "_" + "COMMAND"
	envVarSubcommand            = c.EnvVarPrefix + "_" + "SUBCOMMAND"
	envVarTargetType            = c.EnvVarPrefix + "_" + "TARGET_TYPE"
	envVarLogLevel              = c.EnvVarPrefix + "_" + "LOG_LEVEL"
	envVarStackDump             = c.EnvVarPrefix + "_" + "STACK_DUMP"
	defaultConnectionNameTarget = "TARGET"
)

var (
	twelveFactorMode bool // true if os env var envVarTwelveFactorMode is set
	lambdaMode       bool // true if os env var envVarTwelveFactorMode is set to "lambda"
	twelveFactorVars = map[string]string{
		envVarCommand:    "",
		envVarSubcommand: "",
		// Target
		envVarTargetType: "",
		helper.GetDsnEnvVarName(defaultConnectionNameTarget): "",
		// Misc
		envVarLogLevel:  "",
		envVarStackDump: "",
	}
	twelveFactorVarsSensitive = map[string]string{ // used to flag some of the above variables as being sensitive.
		helper.GetDsnEnvVarName(defaultConnectionNameTarget): "",
		flagNameToEnvVar("iam-role"):                         "",
	}
)

type twelveFactorAction struct {
	runnerFunc func() error
}

var twelveFactorActions = map[string]twelveFactorAction{
	c.ActionFuncsCommandRun + "-": {
		runnerFunc: runPipelineAction,
	},
	c.ActionFuncsCommandSchema + "-" + c.ActionFuncsSubCommandReset: {
		runnerFunc: runSchemaResetAction,
	},
	"load-": {
		runnerFunc: runLoadStagingAction,
	},
	"transform-": {
		runnerFunc: runTransformAction,
	},
}

func getConnectionLoader() actions.ConnectionLoader {
	if twelveFactorMode {
		return &TwelveFactorConnections{}
	}
	return config.ConnectionLoader{}
}

func getConnectionGetterSetter() actions.ConnectionGetterSetter {
	if twelveFactorMode {
		fmt.Printf("Error: connections cannot be configured when %v is set (supply them using %v instead)",
			envVarTwelveFactorMode,
			helper.GetDsnEnvVarName(defaultConnectionNameTarget))
		os.Exit(1)
	}
	return config.Connections
}

func execute12FactorMode(acts map[string]twelveFactorAction) (err error) {
	logLevel := helper.ReadValueFromEnvWithDefault(envVarLogLevel, "warn")
	log := logger.NewLogger("starload", logLevel, stackDumpOnPanic)
	log.Info("Starload is running in 12 Factor mode...")
	// Save values for the required variables.
	for k := range twelveFactorVars { // for each env variable that we need...
		// Save it and log it.
		twelveFactorVars[k] = os.Getenv(k)
		_, sensitive := twelveFactorVarsSensitive[k]
		if !sensitive { // if the env variable does not contain sensitive values...
			// Log the value.
			log.Debug(k, "=", twelveFactorVars[k])
		} else { // else output obfuscated value...
			log.Debug(k, "=", "<obfuscated>")
		}
	}
	// Use command and subcommand to fetch the appropriate action.
	action := fmt.Sprintf("%v-%v", twelveFactorVars[envVarCommand], twelveFactorVars[envVarSubcommand])
	a, ok := acts[action]
	if !ok {
		err = fmt.Errorf("invalid combination of command (%v) and subcommand (%v)", twelveFactorVars[envVarCommand], twelveFactorVars[envVarSubcommand])
		log.Error(err.Error())
		return
	}
	// Run the action.
	err = a.runnerFunc()
	if err != nil {
		log.Error(c.EmojiBang, " Error: ", err)
	}
	return err
}

type TwelveFactorConnections struct{} // implements interfaces in module, actions.

// GetConnectionType is for use when running in twelveFactorMode.
// It returns the value of envVarTargetType, defaulting to redshift when unset.
func (t *TwelveFactorConnections) GetConnectionType(connectionName string) (connectionType string, err error) {
	if connectionName != defaultConnectionNameTarget {
		return "", fmt.Errorf("unexpected connectionName %v while running in twelveFactorMode", connectionName)
	}
	return helper.ReadValueFromEnvWithDefault(envVarTargetType, c.ConnectionTypeRedshift), nil
}

// LoadConnection loads the connection DSN from the environment, parses it based
// on the type set in the environment and returns warehouse.ConnectionDetails.
// This mimics functionality whereby connection details are loaded from the
// config file, but reads info from the environment instead.
func (t *TwelveFactorConnections) LoadConnection(connectionName string) (warehouse.ConnectionDetails, error) {
	kDsn := helper.GetDsnEnvVarName(connectionName)
	var vDsn string
	if err := helper.ReadValueFromEnv(kDsn, &vDsn); err != nil { // if we cannot find the DSN in the environment...
		return warehouse.ConnectionDetails{}, err
	}
	vType, err := t.GetConnectionType(connectionName)
	if err != nil {
		return warehouse.ConnectionDetails{}, err
	}
	m := make(map[string]string) // map for generic connection data.
	switch vType {
	case c.ConnectionTypeRedshift:
		if _, err := warehouse.RedshiftParseDSN(vDsn); err != nil { // if the DSN was invalid...
			return warehouse.ConnectionDetails{}, err
		}
		m = warehouse.DsnConnectionDetails{Dsn: vDsn}.GetMap(m)
	case c.ConnectionTypeMockRedshift:
		m = warehouse.DsnConnectionDetails{Dsn: vDsn}.GetMap(m)
	default:
		return warehouse.ConnectionDetails{}, fmt.Errorf("unsupported connection type %q", vType)
	}
	return warehouse.ConnectionDetails{
		Type:        vType,
		LogicalName: connectionName,
		Data:        m,
	}, nil
}

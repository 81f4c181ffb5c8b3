package cmd

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/playlake/starload/config"
	"github.com/playlake/starload/constants"
	"github.com/playlake/starload/helper"
)

type cliFlag struct {
	name      string // name of flag
	val       string // default value
	shortHand string // single character name for the flag
	desc      string // description of the flag; the long text
}

type cliFlags map[string]cliFlag

var switches = cliFlags{
	"mock": cliFlag{name: "mock", shortHand: "m", desc: "mock switch for testing"},
	"target": cliFlag{name: "target", shortHand: "t",
		desc: "Target warehouse connection name as stored with 'config connections add'"},
	"event-log-uri": cliFlag{name: "event-log-uri", shortHand: "e",
		desc: "S3 URI of the line-delimited JSON event log, e.g. s3://udacity-dend/log_data"},
	"catalog-uri": cliFlag{name: "catalog-uri", shortHand: "s",
		desc: "S3 URI of the line-delimited JSON song catalog, e.g. s3://udacity-dend/song_data"},
	"catalog-mapping-uri": cliFlag{name: "catalog-mapping-uri", shortHand: "j",
		desc: "S3 URI of the JSONPaths document that maps event log keys onto staging columns"},
	"iam-role": cliFlag{name: "iam-role", shortHand: "r",
		desc: "IAM role ARN the Redshift cluster assumes to read the S3 datasets.\n" +
			"Used for authorization only; it is never logged or stored"},
	"bucket-region": cliFlag{name: "bucket-region", shortHand: "R",
		desc: "AWS region of the source buckets; only needed when it differs from the\n" +
			"cluster's region"},
	"skip-preflight": cliFlag{name: "skip-preflight", shortHand: "k",
		desc: "Skip the S3 listing checks that run before COPY statements are issued"},
	"dry-run": cliFlag{name: "dry-run", shortHand: "d",
		desc: "Print the SQL statements without executing them (credentials redacted)"},
	"log-level": cliFlag{name: "log-level", shortHand: "l",
		desc: "Log level: \"error | warn | info | debug\""},
	"print-header": cliFlag{name: "print-header", shortHand: "x",
		desc: "Print a header for SQL query results"},
	"connection-name": cliFlag{name: "connection-name", shortHand: "c",
		desc: "Connection name referred to by the pipeline actions"},
	"dsn": cliFlag{name: "dsn", shortHand: "D",
		desc: "Redshift connect string of the form redshift://<user>:<password>@<host>:<port>/<database>"},
	"force": cliFlag{name: "force", shortHand: "f",
		desc: "Allow overwrite of existing values"},
	"key": cliFlag{name: "key", shortHand: "K",
		desc: "Pipeline config key, e.g. event-log-uri"},
	"value": cliFlag{name: "value", shortHand: "V",
		desc: "Value to store against the key"},
	"port": cliFlag{name: "port", shortHand: "p",
		desc: "Port to listen on"},
}

// addFlag adds a flag to cobra.Command c, based on the type of targetVar (which must be a pointer).
// The name of the flag is looked up in map, cliFlags.
// When running in twelveFactorMode, the targetVar is populated using the value of the environment
// variable for the supplied name, or if not set then the supplied default value is used.
// When NOT running in twelveFactorMode, the default value is fetched from the pipeline config file
// if it exists else the supplied defaultValue is applied.
// The flag is marked as required in Cobra based on the value of required.
func (f *cliFlags) addFlag(c *cobra.Command, targetVar interface{}, name string, defaultValue string, required bool, desc2 string) {
	v := reflect.ValueOf(targetVar)
	if v.Kind() != reflect.Ptr {
		fmt.Println("error adding flag: targetVar must be a pointer")
		os.Exit(1)
	}
	sw := f.getCliFlag(name, defaultValue, config.Pipeline.Get) // get the cliFlag details, with defaults taken from config or the supplied defaultValue
	desc := sw.desc + desc2                                     // create the full flag description for use below
	// Apply the flag.
	switch p := targetVar.(type) {
	case *string:
		if twelveFactorMode {
			*p = sw.val
		} else {
			c.Flags().StringVarP(p, sw.name, sw.shortHand, sw.val, desc)
			// Signal that the flag was set so defaults take effect.
			if sw.val != "" { // if there is a value via config or default...
				mustSetFlag(c.Flags(), sw.name, sw.val)
			}
		}
	case *bool:
		if twelveFactorMode {
			// Convert any string value into True.
			if sw.val != "" {
				*p = true
			} else {
				*p = false
			}
		} else {
			defaultBool := false
			if strings.ToLower(sw.val) == "true" {
				defaultBool = true
			}
			c.Flags().BoolVarP(p, sw.name, sw.shortHand, defaultBool, desc)
			// Signal that the flag was set so defaults take effect.
			if defaultBool {
				mustSetFlag(c.Flags(), sw.name, "true")
			} else {
				mustSetFlag(c.Flags(), sw.name, "false")
			}
		}
	case *int:
		defaultInt, err := strconv.Atoi(sw.val)
		if err != nil {
			fmt.Printf("the value for flag %q must be an integer: %v\n", sw.name, err)
			os.Exit(1)
		}
		if twelveFactorMode {
			*p = defaultInt
		} else {
			c.Flags().IntVarP(p, sw.name, sw.shortHand, defaultInt, desc)
			// Signal that the flag was set so defaults take effect.
			if sw.val != "" { // if there is a value via config or default...
				mustSetFlag(c.Flags(), sw.name, sw.val)
			}
		}
	default:
		panic("Error: unhandled CLI flag target value type")
	}
	// Optionally mark the flag as mandatory.
	if required && !twelveFactorMode { // if the flag is required...
		_ = c.MarkFlagRequired(sw.name)
	}
}

// getCliFlag fetches the value of name from the environment, when running in twelveFactorMode,
// else read the pipeline config file to find it.
// If a value cannot be found then use the supplied defaultValue in its place.
func (f *cliFlags) getCliFlag(name string, defaultValue string, fnGetConfig func(key string, out interface{}) error) cliFlag {
	s, ok := switches[name]
	if !ok {
		panic(fmt.Sprintf("unregistered CLI flag, %q", name))
	}
	if twelveFactorMode { // if we should read env vars...
		if err := helper.ReadValueFromEnv(flagNameToEnvVar(name), &s.val); err != nil { // if there's no value for the env var read into the switch val...
			// Apply the default.
			s.val = defaultValue
		}
	} else { // else check the config file or apply default...
		err := fnGetConfig(s.name, &s.val)
		if errors.As(err, &config.KeyNotFoundError{}) || s.val == "" { // if there was no key found...
			// Apply the default.
			s.val = defaultValue
		}
	}
	return s
}

// flagNameToEnvVar will form a sanitised environment variable name using constants.EnvVarPrefix.
func flagNameToEnvVar(name string) string {
	return constants.EnvVarPrefix + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func mustSetFlag(f *pflag.FlagSet, name string, val string) {
	if err := f.Set(name, val); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// getQueryFromArgsFunc concatenates all args into a SQL string.
// Returns an error if there are no args.
func getQueryFromArgsFunc(query *string, customErrMsg string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 { // if we are missing arguments...
			if customErrMsg != "" {
				return errors.New(customErrMsg)
			}
			return errors.New("please supply a SQL query")
		}
		*query = strings.Join(args, " ")
		return nil
	}
}

package constants

const (
	TimeFormatYearSecondsTZ    = "20060102T150405-0700" // a format that includes the time zone and is compatible with Redshift timestamps.
	EnvVarPrefix               = "SL"                   // prefix for environment variables in twelveFactorMode
	EmojiBang                  = "\U0001F4A5"
	ActionFuncsCommandSchema   = "schema"
	ActionFuncsCommandRun      = "run"
	ActionFuncsSubCommandReset = "reset"
	ConnectionTypeRedshift     = "redshift"
	ConnectionTypeMockRedshift = "mockRedshift"
	ConnectionTypeS3           = "s3"
)

package helper

import (
	"fmt"
	"os"
	"strings"

	"github.com/playlake/starload/constants"
)

// GetEnvVar fetches OS environment variable.
// If the variable is not set it returns empty string.
// It also returns an error if there is a missing value AND mandatory == true.
func GetEnvVar(k string, mandatory bool) (string, error) {
	if value := os.Getenv(k); value != "" {
		return value, nil
	} else {
		if mandatory {
			return "", fmt.Errorf("environment variable %v is not set", k)
		} else {
			return "", nil
		}
	}
}

// ReadValueFromEnv will read the env var called name and populate the supplied val.
// If the env var is not set then return an error.
func ReadValueFromEnv(name string, val *string) error {
	v, err := GetEnvVar(name, true)
	if err != nil { // if there was no environment variable set...
		return fmt.Errorf("value for environment variable %v not found", name)
	}
	*val = v // update the callers value
	return nil
}

// ReadValueFromEnvWithDefault will read the value of name from the environment into v.
// If it's not set then it will apply the supplied defaultValue and return v.
func ReadValueFromEnvWithDefault(name string, defaultValue string) (v string) {
	_ = ReadValueFromEnv(name, &v)
	if v == "" && defaultValue != "" { // if the environment variable is not set and we have been given a default value...
		v = defaultValue
	}
	return
}

// GetDsnEnvVarName converts a connection name into the environment variable
// expected to hold its DSN, e.g. TARGET -> SL_TARGET_DSN.
func GetDsnEnvVarName(connectionName string) string {
	n := strings.TrimSpace(strings.ToUpper(connectionName))
	return fmt.Sprintf("%v_%v_DSN", constants.EnvVarPrefix, n)
}

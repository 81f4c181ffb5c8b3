package config

import (
	"fmt"

	"github.com/playlake/starload/warehouse"
)

// GetConnectionDetails fetches a named connection from the connections config
// file. The logical name is set on the way out so callers can log it instead
// of the DSN.
func GetConnectionDetails(connectionName string) (warehouse.ConnectionDetails, error) {
	conn := warehouse.ConnectionDetails{}
	if err := Connections.Get(connectionName, &conn); err != nil {
		return conn, err
	}
	if conn.Type == "" {
		return conn, fmt.Errorf("unable to find connection %q in config file %v", connectionName, Connections.FullPath)
	}
	conn.LogicalName = connectionName
	return conn, nil
}

// ConnectionLoader implements warehouse.ConnectionGetter against the
// connections config file.
type ConnectionLoader struct{}

func (c ConnectionLoader) LoadConnection(connectionName string) (warehouse.ConnectionDetails, error) {
	return GetConnectionDetails(connectionName)
}

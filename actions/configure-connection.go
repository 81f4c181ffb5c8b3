package actions

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/playlake/starload/config"
	"github.com/playlake/starload/constants"
	"github.com/playlake/starload/helper"
	"github.com/playlake/starload/warehouse"
)

type ConnectionConfig struct {
	ConfigFile  ConnectionGetterSetter
	LogicalName string
	Type        string
	ConnDetails ConnectionValidator
	Force       bool
}

func RunConnectionAdd(cfg *ConnectionConfig) error {
	// Setup the basics ready to be persisted below.
	connection := warehouse.ConnectionDetails{
		LogicalName: cfg.LogicalName,
		Type:        cfg.Type,
		Data:        make(map[string]string),
	}
	if err := helper.ValidateStructIsPopulated(connection); err != nil { // if the basics were not supplied...
		return err
	}
	// Validate connection name.
	if strings.Index(cfg.LogicalName, ".") > 0 {
		return fmt.Errorf("connection name cannot contain period characters '.'")
	}
	// Validate DSN and metadata based on connection type.
	var err error
	if err := cfg.ConnDetails.Parse(); err != nil {
		return errors.Wrap(err, "unable to create connection")
	}
	connection.Type, err = cfg.ConnDetails.GetScheme()
	if err != nil {
		return err
	}
	if connection.Type != constants.ConnectionTypeRedshift &&
		connection.Type != constants.ConnectionTypeMockRedshift { // if the DSN scheme is not a supported warehouse...
		return fmt.Errorf("%v is an unsupported connection type, please use a %v:// DSN",
			connection.Type, constants.ConnectionTypeRedshift)
	}
	cfg.ConnDetails.GetMap(connection.Data)
	// Check for an existing saved connection.
	tmpConn := &warehouse.ConnectionDetails{}
	err = cfg.ConfigFile.Get(cfg.LogicalName, tmpConn)
	if err != nil { // if there is an error finding the connection...
		_, keyNotFoundErr := err.(config.KeyNotFoundError)
		_, fileNotFoundErr := err.(config.FileNotFoundError)
		if !(keyNotFoundErr || fileNotFoundErr) { // if the error is real...
			return err
		}
	} else if tmpConn.LogicalName != "" && !cfg.Force { // else if the connection exists, but we are not allowed to overwrite it...
		return fmt.Errorf("connection exists, use force to update the connection or remove it first")
	}
	// Set config (creates the file if missing).
	err = cfg.ConfigFile.Set(cfg.LogicalName, &connection)
	if err != nil {
		return fmt.Errorf("error writing connections config file after adding: %v", err)
	}
	fmt.Printf("Connection %q added\n", cfg.LogicalName)
	return nil
}

func RunConnectionRemove(cfg *ConnectionConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	err := cfg.ConfigFile.Delete(cfg.LogicalName)
	if err != nil {
		return fmt.Errorf("unable to delete connection %q from config: %v", cfg.LogicalName, err)
	}
	fmt.Printf("Connection %q removed\n", cfg.LogicalName)
	return nil
}

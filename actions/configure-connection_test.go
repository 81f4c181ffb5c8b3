package actions

import (
	"testing"

	"github.com/playlake/starload/config"
	"github.com/playlake/starload/constants"
	"github.com/playlake/starload/warehouse"
)

// mapConfigStore is an in-memory stand-in for the encrypted connections file.
type mapConfigStore struct {
	data map[string]warehouse.ConnectionDetails
}

func newMapConfigStore() *mapConfigStore {
	return &mapConfigStore{data: make(map[string]warehouse.ConnectionDetails)}
}

func (s *mapConfigStore) Get(key string, out interface{}) error {
	v, ok := s.data[key]
	if !ok {
		return config.KeyNotFoundError{}
	}
	p, ok := out.(*warehouse.ConnectionDetails)
	if !ok {
		return config.KeyNotFoundError{}
	}
	*p = v
	return nil
}

func (s *mapConfigStore) Set(key string, val interface{}) error {
	s.data[key] = *(val.(*warehouse.ConnectionDetails))
	return nil
}

func (s *mapConfigStore) Delete(key string) error {
	delete(s.data, key)
	return nil
}

func TestRunConnectionAddValidDsn(t *testing.T) {
	store := newMapConfigStore()
	dsn := "redshift://etl:pw@dwh.example.com:5439/sparkle"
	cfg := &ConnectionConfig{
		ConfigFile:  store,
		LogicalName: "target",
		Type:        constants.ConnectionTypeRedshift,
		ConnDetails: &warehouse.DsnConnectionDetails{Dsn: dsn},
	}
	if err := RunConnectionAdd(cfg); err != nil {
		t.Fatal("unexpected error adding a valid DSN: ", err)
	}
	saved, ok := store.data["target"]
	if !ok {
		t.Fatal("expected the connection to be saved")
	}
	if saved.Type != constants.ConnectionTypeRedshift {
		t.Fatal("unexpected saved connection type: ", saved.Type)
	}
	if saved.Data[warehouse.DefaultDsnConnectionKeyNames.Dsn] != dsn {
		t.Fatal("unexpected saved DSN: ", saved.Data[warehouse.DefaultDsnConnectionKeyNames.Dsn])
	}
}

func TestRunConnectionAddRejectsOtherSchemes(t *testing.T) {
	cfg := &ConnectionConfig{
		ConfigFile:  newMapConfigStore(),
		LogicalName: "target",
		Type:        constants.ConnectionTypeRedshift,
		ConnDetails: &warehouse.DsnConnectionDetails{Dsn: "mysql://u:p@h:3306/db"},
	}
	if err := RunConnectionAdd(cfg); err == nil {
		t.Fatal("expected an error for a non-redshift DSN")
	}
}

func TestRunConnectionAddExistingNeedsForce(t *testing.T) {
	store := newMapConfigStore()
	cfg := &ConnectionConfig{
		ConfigFile:  store,
		LogicalName: "target",
		Type:        constants.ConnectionTypeRedshift,
		ConnDetails: &warehouse.DsnConnectionDetails{Dsn: "redshift://etl:pw@dwh.example.com:5439/sparkle"},
	}
	if err := RunConnectionAdd(cfg); err != nil {
		t.Fatal(err)
	}
	if err := RunConnectionAdd(cfg); err == nil {
		t.Fatal("expected an error adding an existing connection without force")
	}
	cfg.Force = true
	if err := RunConnectionAdd(cfg); err != nil {
		t.Fatal("expected force to allow the overwrite, got: ", err)
	}
}

func TestRunConnectionAddRejectsDottedName(t *testing.T) {
	cfg := &ConnectionConfig{
		ConfigFile:  newMapConfigStore(),
		LogicalName: "bad.name",
		Type:        constants.ConnectionTypeRedshift,
		ConnDetails: &warehouse.DsnConnectionDetails{Dsn: "redshift://etl:pw@dwh.example.com:5439/sparkle"},
	}
	if err := RunConnectionAdd(cfg); err == nil {
		t.Fatal("expected an error for a connection name containing a period")
	}
}

package actions

import (
	"github.com/playlake/starload/warehouse"
)

type ConnectionLoader interface {
	LoadConnection(connectionName string) (warehouse.ConnectionDetails, error)
}

type ConnectionGetterSetter interface {
	Get(key string, out interface{}) error
	Set(key string, val interface{}) error
	Delete(key string) error
}

type ConnectionValidator interface {
	Parse() error
	GetMap(m map[string]string) map[string]string
	GetScheme() (string, error)
}

package warehouse

import (
	"fmt"

	"github.com/playlake/starload/constants"
	"github.com/playlake/starload/logger"
)

// OpenDbConnection opens a warehouse connection using the supplied ConnectionDetails struct in c.
func OpenDbConnection(log logger.Logger, c ConnectionDetails) (db Connector, err error) {
	log.Debug("opening connection type ", c.Type, " with logicalName ", c.LogicalName) // don't log password details in c.Data!
	switch c.Type {
	case constants.ConnectionTypeRedshift:
		db, err = newRedshiftConnection(log, GetDsnConnectionDetails(&c))
	case constants.ConnectionTypeMockRedshift:
		db, _ = NewMockConnection(log)
	default: // else we have an unsupported database...
		err = fmt.Errorf("unsupported database type, %q", c.Type)
	}
	return
}

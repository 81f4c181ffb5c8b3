package warehouse

import (
	"fmt"

	"golang.org/x/net/context"

	"github.com/playlake/starload/logger"
)

// SqlQuery runs sqltext over db and streams the header then each row to the supplied handler.
func SqlQuery(ctx context.Context, log logger.Logger, db Connector, sqltext string, i SqlResultHandler) error {
	rows, err := db.QueryContext(ctx, sqltext)
	if err != nil {
		return fmt.Errorf("error during database query using SQL: '%v': %w", sqltext, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("error fetching result columns: %w", err)
	}
	numCols := len(cols)
	scanPtrs := make([]interface{}, numCols, numCols)
	scanVals := make([]interface{}, numCols, numCols)
	for idx := 0; idx < numCols; idx++ { // for each column...
		scanPtrs[idx] = &scanVals[idx]
	}
	// Build and send the header.
	header := make([]interface{}, numCols, numCols)
	for idx := range cols {
		header[idx] = cols[idx]
	}
	if err = i.HandleHeader(header); err != nil {
		return err
	}
	// Send the rows via callback interface.
	for {
		select { // quit if asked to, else continue...
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !rows.Next() { // if the result set is exhausted...
			break
		}
		if err := rows.Scan(scanPtrs...); err != nil {
			return fmt.Errorf("error scanning row: %v", err)
		}
		row := make([]interface{}, numCols, numCols)
		for idx := range scanVals { // for each value...
			row[idx] = scanVals[idx]
		}
		if err = i.HandleRow(row); err != nil {
			return err
		}
	}
	return rows.Err()
}

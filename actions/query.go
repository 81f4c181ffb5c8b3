package actions

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/context"

	"github.com/playlake/starload/helper"
	"github.com/playlake/starload/logger"
	"github.com/playlake/starload/warehouse"
)

type QueryConfig struct {
	Connections      ConnectionLoader
	TargetConnection string `errorTxt:"target <connection>" mandatory:"yes"`
	Query            string `errorTxt:"SQL query" mandatory:"yes"`
	PrintHeader      bool
	DryRun           bool
	LogLevel         string `errorTxt:"log level" mandatory:"yes"`
	StackDumpOnPanic bool
}

type sqlHandler struct {
	printHeader bool
}

func (s *sqlHandler) HandleHeader(i []interface{}) error {
	if s.printHeader {
		str := helper.InterfaceToString(i)
		w := csv.NewWriter(os.Stdout)
		err := w.Write(str)
		if err != nil {
			return fmt.Errorf("error outputting SQL header: %v", err)
		}
		w.Flush()
	}
	return nil
}

func (s *sqlHandler) HandleRow(i []interface{}) error {
	str := helper.InterfaceToString(i)
	w := csv.NewWriter(os.Stdout)
	err := w.Write(str)
	if err != nil {
		return fmt.Errorf("error outputting SQL row: %v", err)
	}
	w.Flush()
	return nil
}

// RunQuery executes ad-hoc SQL against the configured warehouse connection and
// writes the result set to STDOUT as CSV. Handy for inspecting the star schema
// after a run.
func RunQuery(cfg *QueryConfig) error {
	var err error
	if cfg.DryRun {
		fmt.Println(cfg.Query)
		return nil
	}
	log := logger.NewLogger("starload", cfg.LogLevel, cfg.StackDumpOnPanic)
	if err := helper.ValidateStructIsPopulated(cfg); err != nil {
		return err
	}
	// Connect to database.
	conn, err := cfg.Connections.LoadConnection(cfg.TargetConnection)
	if err != nil {
		return err
	}
	db, err := warehouse.OpenDbConnection(log, conn)
	if err != nil {
		return err
	}
	defer db.Close()
	// Create context.
	ctx, cancelFn := context.WithCancel(context.Background())
	h := sqlHandler{printHeader: cfg.PrintHeader}
	// Handle interrupts.
	chanQuit := make(chan os.Signal, 2)
	chanSql := make(chan struct{}, 1)
	signal.Notify(chanQuit, os.Interrupt, syscall.SIGTERM)
	// Start the SQL.
	go func() {
		err = warehouse.SqlQuery(ctx, log, db, cfg.Query, &h)
		chanSql <- struct{}{}
	}()
	// Wait for SQL or interrupt.
	select {
	case <-chanQuit: // if we were interrupted...
		fmt.Println("\nUser abort. Stopping SQL execution...")
		cancelFn() // cancel the SQL.
		select {
		case <-time.After(5 * time.Second): // timeout.
			fmt.Println("Timeout waiting for SQL to end - aborted")
		case <-chanSql: // sql ended.
		}
		return nil
	case <-chanSql: // SQL ended.
	}
	return err
}

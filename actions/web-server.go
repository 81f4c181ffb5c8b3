package actions

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/playlake/starload/helper"
	"github.com/playlake/starload/logger"
)

type WebServerConfig struct {
	LogLevel         string `errorTxt:"log level" mandatory:"yes"`
	Scheme           string `errorTxt:"scheme" mandatory:"no"`
	Addr             net.IP `errorTxt:"address" mandatory:"no"`
	Port             int    `errorTxt:"port" mandatory:"no"`
	Connections      ConnectionLoader
	Pipeline         *PipelineConfig // defaults applied to launched runs.
	StackDumpOnPanic bool
}

// RunWebServer exposes the two batch operations over HTTP: POST /schema/reset
// and POST /runs (async, polled via GET /runs/{runId}/status). The server does
// not serialize runs; callers must.
func RunWebServer(web *WebServerConfig) error {
	if web == nil {
		return errors.New("nil pointer to web server config supplied")
	}
	log := logger.NewWebLogger("starload", web.LogLevel, web.StackDumpOnPanic, func() {})
	err := helper.ValidateStructIsPopulated(web)
	if err != nil {
		return err
	}
	// Start the web server.
	srv, chanStopServer := runServer(log, web)
	// Block & wait for completion.
	return waitForServer(log, srv, chanStopServer)
}

// runServer starts a web server and returns:
// 1) the server; and
// 2) a channel that can be used to stop the web server.
func runServer(log logger.Logger, web *WebServerConfig) (*http.Server, chan string) {
	chanStopServer := make(chan string, 1)
	allRunInfo := NewSafeMapRunInfo()
	// Create routes.
	r := mux.NewRouter()
	r.HandleFunc("/stop", GetHandlerStopServer(log, chanStopServer))
	r.Path("/health").HandlerFunc(GetHandlerHealth(log))
	r.Path("/schema/reset").Methods(http.MethodPost).HandlerFunc(GetHandlerSchemaReset(log, web))
	r.Path("/runs").Methods(http.MethodPost).HandlerFunc(GetHandlerRunLaunch(log, allRunInfo, web))
	r.Path("/runs").Methods(http.MethodGet).HandlerFunc(GetHandlerRunList(log, allRunInfo))
	r.Path("/runs/{runId}/status").HandlerFunc(GetHandlerRunStatus(log, allRunInfo))
	r.Path("/runs/{runId}/stats").HandlerFunc(GetHandlerRunStats(log, allRunInfo))
	// Configure HTTP server.
	srv := &http.Server{ // Good practice to set timeouts to avoid Slowloris attacks.
		Addr:         fmt.Sprintf("%v:%v", web.Addr, web.Port),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      r, // supply our instance of gorilla/mux.
	}
	// Run HTTP server non-blocking.
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			if err == http.ErrServerClosed {
				log.Info(err)
			} else {
				log.Panic(err)
			}
		}
	}()
	log.Info(fmt.Sprintf("Listening on %v://%v:%v", strings.ToLower(web.Scheme), web.Addr, web.Port))
	return srv, chanStopServer
}

func waitForServer(log logger.Logger, srv *http.Server, chanStopServer chan string) error {
	// Block & wait for shutdown signals.
	// Accept graceful shutdowns when quit via SIGINT (Ctrl+C)
	// SIGKILL, SIGQUIT or SIGTERM (Ctrl+\) will not be caught.
	chanOS := make(chan os.Signal, 1)
	signal.Notify(chanOS, os.Interrupt) // request signals be sent to chanOS.
	select {
	case <-chanStopServer:
	case <-chanOS:
	}
	fmt.Println() // print new line char for clean looking CLI.
	log.Info("Shutting down web server...")
	// Launched runs keep going in the warehouse regardless; there is no way to
	// cancel a COPY that is already executing server side.
	wait := time.Second * 15                                       // duration
	ctx, cancel := context.WithTimeout(context.Background(), wait) // create a timeout to wait for.
	defer cancel()                                                 // cancel the timeout.
	err := srv.Shutdown(ctx)                                       // Doesn't block if no connections, but will otherwise wait until the timeout deadline.
	return err
}

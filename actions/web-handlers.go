package actions

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/xid"

	"github.com/playlake/starload/constants"
	"github.com/playlake/starload/logger"
	"github.com/playlake/starload/stats"
)

type WebServerResponse uint32

const (
	Okay WebServerResponse = iota + 1
	Error
)

func (w WebServerResponse) MarshalJSON() ([]byte, error) {
	var retval string
	switch w {
	case Okay:
		retval = "ok"
	case Error:
		retval = "error"
	default:
		err := fmt.Errorf("unhandled WebServerResponse value in MarshalJSON() conversion")
		return nil, err
	}
	return json.Marshal(retval)
}

type ResponseSimple struct {
	ServerStatus WebServerResponse `json:"status"`
}

type ResponseSchemaReset struct {
	Status  WebServerResponse `json:"status"`
	Message string            `json:"message"`
}

type ResponseRunLaunch struct {
	Status  WebServerResponse `json:"status"`
	Message string            `json:"message"`
	RunId   string            `json:"runId"`
}

type ResponseRunList struct {
	Status WebServerResponse `json:"status"`
	Runs   []RunInfo         `json:"runs"`
}

type ResponseRunStatus struct {
	Status  WebServerResponse `json:"status"`
	Message string            `json:"message"`
	Run     *RunInfo          `json:"run,omitempty"`
}

type ResponseRunStats struct {
	Status       WebServerResponse `json:"status"`
	Message      string            `json:"message"`
	StatsSummary interface{}       `json:"runStats"`
}

// runRequest is the optional JSON body of POST /runs. Unset fields fall back to
// the server's configured pipeline defaults. The IAM role is accepted but never
// echoed back in any response.
type runRequest struct {
	TargetConnection  string `json:"targetConnection"`
	EventLogUri       string `json:"eventLogUri"`
	CatalogUri        string `json:"catalogUri"`
	CatalogMappingUri string `json:"catalogMappingUri"`
	IamRole           string `json:"iamRole"`
	BucketRegion      string `json:"bucketRegion"`
}

func GetHandlerHealth(log logger.Logger) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseSimple{ServerStatus: Okay})
	}
}

func GetHandlerStopServer(log logger.Logger, chanStop chan string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		chanStop <- "stop"
		log.Info("Stop signal sent")
		respond(log, w, ResponseSimple{ServerStatus: Okay})
	}
}

// GetHandlerSchemaReset drops and recreates the star schema synchronously.
func GetHandlerSchemaReset(log logger.Logger, web *WebServerConfig) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := &ResetSchemaConfig{
			Connections:      web.Connections,
			TargetConnection: web.Pipeline.TargetConnection,
			LogLevel:         web.LogLevel,
			StackDumpOnPanic: web.StackDumpOnPanic,
		}
		if err := RunResetSchema(cfg); err != nil {
			log.Error(err)
			w.WriteHeader(http.StatusInternalServerError)
			respond(log, w, ResponseSchemaReset{Status: Error, Message: err.Error()})
			return
		}
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseSchemaReset{Status: Okay, Message: "schema reset complete"})
	}
}

// GetHandlerRunLaunch starts a full pipeline run in the background and returns
// its run ID. The server does not serialize runs; callers must.
func GetHandlerRunLaunch(log logger.Logger, allRunInfo *SafeMapRunInfo, web *WebServerConfig) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := *web.Pipeline // copy the defaults.
		cfg.Connections = web.Connections
		cfg.LogLevel = web.LogLevel
		cfg.StackDumpOnPanic = web.StackDumpOnPanic
		// Apply overrides from the request body, if any.
		b, _ := ioutil.ReadAll(r.Body)
		if len(b) > 0 { // if a body was supplied...
			req := runRequest{}
			if err := json.Unmarshal(b, &req); err != nil {
				log.Error(err)
				w.WriteHeader(http.StatusBadRequest)
				respond(log, w, ResponseRunLaunch{Status: Error, Message: fmt.Sprintf("error unmarshalling JSON: %v", err)})
				return
			}
			applyRunRequest(&cfg, &req)
		}
		copies, err := buildCopyConfigs(pipelineLoadConfig(&cfg))
		if err != nil {
			log.Error(err)
			w.WriteHeader(http.StatusBadRequest)
			respond(log, w, ResponseRunLaunch{Status: Error, Message: err.Error()})
			return
		}
		// Launch.
		runId := xid.New().String()
		startTime := time.Now()
		st := stats.NewRunStats(log)
		allRunInfo.Store(runId, &RunInfo{
			RunId:     runId,
			StartTime: startTime,
			Status:    RunStatusRunning,
			Stats:     st,
		})
		log.Info("Run ", runId, " launched at ", startTime.Format(constants.TimeFormatYearSecondsTZ))
		go func() {
			err := executePipeline(log, &cfg, copies, st)
			st.LogStats()
			if err != nil {
				log.Error("Run ", runId, " failed at step ", FailedStepName(err), ": ", err)
			} else {
				log.Info("Run ", runId, " complete.")
			}
			allRunInfo.setOutcome(runId, err)
		}()
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseRunLaunch{Status: Okay, Message: "run launched", RunId: runId})
	}
}

func GetHandlerRunList(log logger.Logger, allRunInfo *SafeMapRunInfo) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseRunList{Status: Okay, Runs: allRunInfo.LoadAll()})
	}
}

func GetHandlerRunStatus(log logger.Logger, allRunInfo *SafeMapRunInfo) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id := vars["runId"]
		info, ok := allRunInfo.Load(id)
		if ok { // if the run exists...
			w.WriteHeader(http.StatusOK)
			respond(log, w, ResponseRunStatus{Status: Okay, Run: &info})
		} else { // else the run doesn't exist...
			w.WriteHeader(http.StatusBadRequest)
			log.Info("HTTP request for status of run ", id, " that doesn't exist.")
			respond(log, w, ResponseRunStatus{Status: Error, Message: fmt.Sprintf("run %v does not exist", id)})
		}
	}
}

func GetHandlerRunStats(log logger.Logger, allRunInfo *SafeMapRunInfo) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id := vars["runId"]
		info, ok := allRunInfo.Load(id)
		if ok { // if the run exists...
			w.WriteHeader(http.StatusOK)
			respond(log, w, ResponseRunStats{Status: Okay, StatsSummary: info.Stats.GetStats()})
		} else { // else the run doesn't exist...
			w.WriteHeader(http.StatusBadRequest)
			log.Info("HTTP request for stats of run ", id, " that doesn't exist.")
			respond(log, w, ResponseRunStats{Status: Error, Message: fmt.Sprintf("run %v does not exist", id)})
		}
	}
}

func applyRunRequest(cfg *PipelineConfig, req *runRequest) {
	if req.TargetConnection != "" {
		cfg.TargetConnection = req.TargetConnection
	}
	if req.EventLogUri != "" {
		cfg.EventLogUri = req.EventLogUri
	}
	if req.CatalogUri != "" {
		cfg.CatalogUri = req.CatalogUri
	}
	if req.CatalogMappingUri != "" {
		cfg.CatalogMappingUri = req.CatalogMappingUri
	}
	if req.IamRole != "" {
		cfg.IamRole = req.IamRole
	}
	if req.BucketRegion != "" {
		cfg.BucketRegion = req.BucketRegion
	}
}

// respond will marshal i to a string and write it to w.
func respond(log logger.Logger, w http.ResponseWriter, i interface{}) {
	j, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		log.Panic(err)
	}
	_, err = fmt.Fprint(w, string(j))
	if err != nil {
		log.Panic(err)
	}
}

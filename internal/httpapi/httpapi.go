/*
File    : volsung/internal/httpapi/httpapi.go
*/

// Package httpapi exposes a debug/inspection HTTP surface over a running
// program.Program: a collaborator for tooling and tests, not part of the
// synchronous audio core. Routing and JSON request/response handling
// follow tunaq's server/api package (a chi router, a small JSON error
// envelope), scaled down to Volsung's three endpoints, none of which take
// a path parameter.
package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/volsung-lang/volsung/program"
)

// API holds everything a handler needs to answer a request: the Program
// it inspects/drives, guarded by mu since HTTP handlers run concurrently
// with each other (and, when mounted alongside a REPL on the same
// Program, with whatever line the REPL is currently executing).
type API struct {
	Prog *program.Program

	mu sync.Mutex
}

// Router builds the chi router exposing this API's endpoints.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", a.handleHealthz)
	r.Get("/graph", a.handleGraph)
	r.Post("/run", a.handleRun)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleHealthz reports that the server is up and how many nodes the
// Program currently holds, a cheap liveness signal.
func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	nodes := a.Prog.CountNodes()
	a.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"nodes":  nodes,
	})
}

// handleGraph reports the Program's node count, used by tooling that
// wants to confirm a parse actually produced a graph without re-running
// the whole source through a local parser.
func (a *API) handleGraph(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	nodes := a.Prog.CountNodes()
	a.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"nodes": nodes,
	})
}

// runRequest is the body of POST /run: one frame of input samples.
type runRequest struct {
	Input []float64 `json:"input"`
}

// runResponse is the body of a successful POST /run: the output frame
// produced by simulating the Program once.
type runResponse struct {
	Output []float64 `json:"output"`
}

// handleRun pushes one frame of input samples through the Program and
// returns the resulting output frame, a debug/inspection shortcut for
// driving the graph without a full REPL session.
func (a *API) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body: "+err.Error())
		return
	}
	a.mu.Lock()
	out, err := a.Prog.Run(req.Input)
	a.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runResponse{Output: out})
}

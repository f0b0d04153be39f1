package explore

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/getong/stateright"
)

// Server exposes an Explorer over JSON on HTTP.
//
// States are addressed by fingerprint; a state must have been discovered (via
// the init or successor endpoints) before it can be addressed. The listen
// address is explicit configuration passed to ListenAndServe, never a global.
type Server[S, A any] struct {
	exp *Explorer[S, A]
	log zerolog.Logger
	mux *http.ServeMux

	requests   *prometheus.CounterVec
	discovered prometheus.GaugeFunc
}

func NewServer[S, A any](exp *Explorer[S, A], log zerolog.Logger) *Server[S, A] {
	s := &Server[S, A]{
		exp: exp,
		log: log,
		mux: http.NewServeMux(),
	}

	registry := prometheus.NewRegistry()
	s.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stateright",
			Name:      "explorer_requests_total",
			Help:      "Total number of explorer requests",
		},
		[]string{"endpoint"},
	)
	s.discovered = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "stateright",
			Name:      "explorer_discovered_states",
			Help:      "Number of distinct states discovered",
		},
		func() float64 { return float64(exp.Count()) },
	)
	registry.MustRegister(s.requests, s.discovered)

	s.mux.HandleFunc("GET /states/count", s.handleCount)
	s.mux.HandleFunc("GET /states/init", s.handleInit)
	s.mux.HandleFunc("GET /states/{fp}", s.handleState)
	s.mux.HandleFunc("GET /states/{fp}/successors", s.handleSuccessors)
	s.mux.HandleFunc("GET /states/{fp}/next/{action}", s.handleNext)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return s
}

// Handler returns the HTTP handler serving the explorer API.
func (s *Server[S, A]) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves the explorer API on the address until the listener
// fails.
func (s *Server[S, A]) ListenAndServe(addr string) error {
	s.log.Info().Str("addr", addr).Msg("explorer listening")
	return http.ListenAndServe(addr, s.mux)
}

// The JSON rendering of one state.
type stateJSON struct {
	Fingerprint string   `json:"fingerprint"`
	Display     string   `json:"display"`
	Actions     []string `json:"actions,omitempty"`
}

func (s *Server[S, A]) renderState(state S, withActions bool) stateJSON {
	out := stateJSON{
		Fingerprint: stateright.FingerprintOf(state).String(),
		Display:     fmt.Sprintf("%v", state),
	}
	if withActions {
		for _, a := range s.exp.Actions(state) {
			out.Actions = append(out.Actions, fmt.Sprintf("%v", a))
		}
	}
	return out
}

func (s *Server[S, A]) handleCount(w http.ResponseWriter, r *http.Request) {
	s.requests.WithLabelValues("count").Inc()
	writeJSON(w, map[string]int{"count": s.exp.Count()})
}

func (s *Server[S, A]) handleInit(w http.ResponseWriter, r *http.Request) {
	s.requests.WithLabelValues("init").Inc()
	var out []stateJSON
	for _, state := range s.exp.Init() {
		out = append(out, s.renderState(state, true))
	}
	writeJSON(w, out)
}

func (s *Server[S, A]) handleState(w http.ResponseWriter, r *http.Request) {
	s.requests.WithLabelValues("state").Inc()
	state, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.renderState(state, true))
}

func (s *Server[S, A]) handleSuccessors(w http.ResponseWriter, r *http.Request) {
	s.requests.WithLabelValues("successors").Inc()
	state, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var out []stateJSON
	for _, succ := range s.exp.Successors(state) {
		out = append(out, s.renderState(succ, false))
	}
	writeJSON(w, out)
}

func (s *Server[S, A]) handleNext(w http.ResponseWriter, r *http.Request) {
	s.requests.WithLabelValues("next").Inc()
	state, ok := s.lookup(w, r)
	if !ok {
		return
	}
	i, err := strconv.Atoi(r.PathValue("action"))
	if err != nil {
		http.Error(w, "bad action index", http.StatusBadRequest)
		return
	}
	succ, ok := s.exp.Apply(state, i)
	if !ok {
		http.Error(w, "action does not apply", http.StatusNotFound)
		return
	}
	writeJSON(w, s.renderState(succ, true))
}

// Resolve the fingerprint in the request path to a registered state, writing
// the HTTP error if it fails.
func (s *Server[S, A]) lookup(w http.ResponseWriter, r *http.Request) (S, bool) {
	var zero S
	raw, err := strconv.ParseUint(r.PathValue("fp"), 16, 64)
	if err != nil {
		http.Error(w, "bad fingerprint", http.StatusBadRequest)
		return zero, false
	}
	state, ok := s.exp.State(stateright.Fingerprint(raw))
	if !ok {
		http.Error(w, "unknown state", http.StatusNotFound)
		return zero, false
	}
	return state, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	// An encode failure here means the response is already partially written.
	_ = json.NewEncoder(w).Encode(v)
}

// Package streamserver is the reference HTTP transport for
// planservice.Service: an NDJSON streaming endpoint and an optional
// websocket upgrade, both carrying the same progress/result/error event
// stream (spec §6.2). spec.md explicitly scopes the HTTP layer itself
// out (§1); this adapter exists purely so the streaming contract has a
// concrete transport to exercise end-to-end.
package streamserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/andrescamacho/egg-planner/internal/application/common"
	"github.com/andrescamacho/egg-planner/internal/application/planservice"
	"github.com/andrescamacho/egg-planner/internal/domain/ship"
)

// Server wraps a planservice.Service with HTTP handlers.
type Server struct {
	Service *planservice.Service
	Fleet   ship.Fleet
	addr    string
	http    *http.Server
}

// New builds a Server bound to addr, serving svc over NDJSON (POST
// /v1/plan) and websocket (GET /v1/plan/ws).
func New(addr string, svc *planservice.Service, fleet ship.Fleet) *Server {
	s := &Server{Service: svc, Fleet: fleet, addr: addr}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/plan", s.handleNDJSON)
	mux.HandleFunc("/v1/plan/ws", s.handleWebsocket)

	s.http = &http.Server{Addr: addr, Handler: mux}
	return s
}

// ListenAndServe blocks serving HTTP until the server is shut down or an
// unrecoverable error occurs.
func (s *Server) ListenAndServe() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleNDJSON(w http.ResponseWriter, r *http.Request) {
	logger := common.LoggerFromContext(r.Context())

	req, ctx, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	flusher, _ := w.(http.Flusher)
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	encoder := json.NewEncoder(w)
	opts := planservice.Options{FastMode: req.FastMode}
	stream := s.Service.StreamPlanForTarget(ctx, req.toProfile(s.Fleet), req.TargetItemID, req.Quantity, req.PriorityTime, opts)

	for event := range stream.Events {
		if err := encoder.Encode(toEventDTO(event)); err != nil {
			logger.Log("WARN", "streamserver: ndjson write failed", map[string]interface{}{"error": err.Error()})
			stream.Cancel()
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same-origin checks are the embedder's concern; spec.md scopes auth
	// and transport hardening out of the core planner entirely.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	logger := common.LoggerFromContext(r.Context())

	req, ctx, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log("WARN", "streamserver: websocket upgrade failed", map[string]interface{}{"error": err.Error()})
		return
	}
	defer conn.Close()

	opts := planservice.Options{FastMode: req.FastMode}
	stream := s.Service.StreamPlanForTarget(ctx, req.toProfile(s.Fleet), req.TargetItemID, req.Quantity, req.PriorityTime, opts)

	go watchForClientClose(conn, stream.Cancel)

	for event := range stream.Events {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(toEventDTO(event)); err != nil {
			logger.Log("WARN", "streamserver: websocket write failed", map[string]interface{}{"error": err.Error()})
			stream.Cancel()
			return
		}
	}
}

// watchForClientClose drains (and discards) inbound frames so a client
// disconnect surfaces as a read error, at which point the request is
// cancelled (spec §5 "Cancellation").
func watchForClientClose(conn *websocket.Conn, cancel context.CancelFunc) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			cancel()
			return
		}
	}
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*planRequest, context.Context, bool) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}
	return &req, r.Context(), true
}

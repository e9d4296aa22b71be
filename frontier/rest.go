// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package frontier

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// toolNames lists every route the REST transport mounts, one per
// canonical tool (spec.md §6 "REST shape (one-to-one with the tool
// surface): POSTs with JSON bodies; each tool has a dedicated route").
var toolNames = []string{
	"ensure_project", "register_agent",
	"send_message", "reply_message", "check_inbox", "mark_message_read", "acknowledge_message",
	"reserve_file", "file_reservation_paths", "release_reservation", "renew_file_reservation",
	"force_release_reservation", "list_file_reservations",
	"acquire_build_slot", "renew_build_slot", "release_build_slot",
	"request_contact", "respond_contact", "set_contact_policy",
	"list_threads", "summarize_thread",
	"ensure_product", "link_project_to_product",
}

// Router builds the gorilla/mux router backing the REST transport,
// wrapped in rs/cors exactly as the teacher's HTTP server composes
// its middleware chain. allowedOrigins sets the CORS origins; an empty
// list (cmd/agentmaild passes nil) lets rs/cors allow every origin.
func (fr *Frontier) Router(allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	for _, name := range toolNames {
		r.HandleFunc("/v1/"+name, fr.httpHandler(name)).Methods(http.MethodPost)
	}
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodGet},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(r)
}

func (fr *Frontier) httpHandler(toolName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var args Args
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
				writeEnvelope(w, http.StatusBadRequest, Envelope{Code: 400, Name: "BAD_JSON", Message: err.Error()})
				return
			}
		}
		if args == nil {
			args = Args{}
		}

		result, err := fr.Dispatch(r.Context(), bearerToken(r), toolName, args)
		if err != nil {
			env := toEnvelope(err)
			writeEnvelope(w, env.Code, env)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(result)
	}
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return h
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package frontier

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// upgrader accepts any origin; rs/cors already gates the REST surface
// and the WebSocket route is meant for the same trusted callers
// (SPEC_FULL.md §8).
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsRequest is one multiplexed call over a WebSocket connection.
type wsRequest struct {
	ID   string `json:"id"`
	Tool string `json:"tool"`
	Args Args   `json:"args"`
}

// wsResponse echoes the request id so a caller can match replies that
// arrive out of order on the same connection (SPEC_FULL.md §8 "the
// streaming transport... emitting the same JSON envelopes... over a
// per-connection multiplexed channel").
type wsResponse struct {
	ID     string      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  *Envelope   `json:"error,omitempty"`
}

// StreamHandler upgrades to a WebSocket and serves only the tools
// registered as streamable; every other tool name is rejected so the
// read-only surface can't be used to smuggle a mutating call past the
// REST transport's routing.
func (fr *Frontier) StreamHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	token := bearerToken(r)
	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}

		t, ok := fr.resolve(req.Tool)
		if !ok || !t.streamable {
			env := Envelope{Code: 400, Name: "NOT_STREAMABLE", Message: "tool is not available over the stream transport"}
			if writeErr := conn.WriteJSON(wsResponse{ID: req.ID, Error: &env}); writeErr != nil {
				return
			}
			continue
		}

		args := req.Args
		if args == nil {
			args = Args{}
		}
		result, err := fr.Dispatch(r.Context(), token, req.Tool, args)
		resp := wsResponse{ID: req.ID}
		if err != nil {
			env := toEnvelope(err)
			resp.Error = &env
		} else {
			resp.Result = result
		}
		if writeErr := conn.WriteJSON(resp); writeErr != nil {
			return
		}
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"devlink/internal/models"
)

// Recoverer turns a handler panic into a logged stack trace and an opaque
// 500 problem. If the handler already sent headers the response is left
// as is. http.ErrAbortHandler is re-raised so the server aborts the
// connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := newStatusRecorder(w)
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}

			slog.Error("panic recovered",
				"panic", fmt.Sprint(p),
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", GetRequestID(r.Context()),
				"headers_sent", rec.wroteHeader,
				"stack", string(debug.Stack()),
			)
			if !rec.wroteHeader {
				models.NewInternalError().WriteJSON(rec)
			}
		}()

		next.ServeHTTP(rec, r)
	})
}

/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Seednode/chaoskitchen/kitchen"
	"github.com/julienschmidt/httprouter"
)

func serveHomePage(cfg *Config, mgr *kitchen.Manager, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		var body strings.Builder

		body.WriteString(`<h1>🍳 chaoskitchen</h1>`)
		body.WriteString(`<p>Cook together, pass ingredients to your neighbors, and serve orders before the clock runs out.</p>`)

		if code := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("room"))); code != "" {
			if _, ok := mgr.Room(code); ok {
				body.WriteString(fmt.Sprintf(`<p>You were invited to kitchen <strong>%s</strong>. Join it from your client with this code.</p>`,
					html.EscapeString(code)))
			} else {
				body.WriteString(`<p>That kitchen has already closed.</p>`)
			}
		}

		body.WriteString(fmt.Sprintf(`<p>Clients connect to <code>%s/kitchen/ws</code>.</p>`, html.EscapeString(cfg.prefix)))
		body.WriteString(fmt.Sprintf(`<p>%d kitchen(s) open. Running v%s.</p>`, mgr.RoomCount(), releaseVersion))

		page := newPage(cfg, "chaoskitchen", body.String())

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(page)))
		securityHeaders(cfg, w)
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'unsafe-inline'")

		written, err := w.Write([]byte(page))
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Home page (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveHealthCheck(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte("Ok\n"))
		if err != nil {
			errs <- err

			return
		}
	}
}

func serveRobots(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		data := `User-agent: *
Disallow: ` + cfg.prefix + `/kitchen/

User-agent: GPTBot
Disallow: /

User-agent: CCBot
Disallow: /`

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(data))
		if err != nil {
			errs <- err

			return
		}
	}
}

/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
)

const favicon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">` +
	`<text y=".9em" font-size="90">🍳</text></svg>`

func getFavicon(cfg *Config) string {
	return `<link rel="icon" type="image/svg+xml" href="` + cfg.prefix + `/favicon.svg">
	<meta name="theme-color" content="#fff8ee">`
}

func serveFavicon(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Header().Set("Expires", time.Now().Add(24*time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Content-Length", strconv.Itoa(len(favicon)))
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(favicon))
		if err != nil {
			errs <- err

			return
		}
	}
}

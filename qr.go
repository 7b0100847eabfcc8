/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Seednode/chaoskitchen/kitchen"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

// roomURL builds the invite link for a room, respecting TLS and
// X-Forwarded-Proto when present.
func roomURL(cfg *Config, r *http.Request, code string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     cfg.prefix + "/",
		RawQuery: url.Values{"room": {code}}.Encode(),
	}
	return u.String()
}

func serveRoomQR(cfg *Config, mgr *kitchen.Manager, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		code := strings.ToUpper(strings.TrimSpace(p.ByName("room")))
		if _, ok := mgr.Room(code); !ok {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		png, err := qrcode.Encode(roomURL(cfg, r, code), qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		securityHeaders(cfg, w)

		written, err := w.Write(png)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: QR code for room %s (%s) to %s in %s",
			code,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

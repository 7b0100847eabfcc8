/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"net/http/pprof"
	"runtime"

	"github.com/julienschmidt/httprouter"
)

// Rooms serialize on their own locks, so the block and mutex profiles are
// sampled as well as the usual ones.
func registerProfileHandlers(cfg *Config, mux *httprouter.Router) {
	runtime.SetBlockProfileRate(1)
	runtime.SetMutexProfileFraction(5)

	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		mux.Handler(http.MethodGet, cfg.prefix+"/pprof/"+name, pprof.Handler(name))
	}

	mux.HandlerFunc(http.MethodGet, cfg.prefix+"/pprof/", pprof.Index)
	mux.HandlerFunc(http.MethodGet, cfg.prefix+"/pprof/cmdline", pprof.Cmdline)
	mux.HandlerFunc(http.MethodGet, cfg.prefix+"/pprof/profile", pprof.Profile)
	mux.HandlerFunc(http.MethodGet, cfg.prefix+"/pprof/symbol", pprof.Symbol)
	mux.HandlerFunc(http.MethodGet, cfg.prefix+"/pprof/trace", pprof.Trace)

	logf(cfg, "PROFILE: Registered pprof handlers under %s/pprof/", cfg.prefix)
}

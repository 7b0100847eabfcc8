/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var errUnknownEvent = errors.New("unknown event")

func newLogger(cfg *Config, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.verbose {
		level = zerolog.DebugLevel
	}

	if out == nil {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: logDate}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// logf writes verbose-only output.
func logf(cfg *Config, format string, args ...any) {
	cfg.logger.Debug().Msgf(format, args...)
}

// drainErrors logs handler write failures until errs is closed.
func drainErrors(cfg *Config, errs <-chan error) {
	for err := range errs {
		cfg.logger.Error().Err(err).Msg("serve")
	}
}

func newPage(cfg *Config, title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
	htmlBody.WriteString(getFavicon(cfg))
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body{height:100%;margin:0;font-family:sans-serif;background:#fff8ee;color:#3b2a1a;}`)
	htmlBody.WriteString(`main{max-width:36rem;margin:0 auto;padding:2rem;}code{background:#f3e3cc;padding:0 .25rem;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", html.EscapeString(title)))
	htmlBody.WriteString(fmt.Sprintf("<body><main>%s</main></body></html>", body))

	return htmlBody.String()
}

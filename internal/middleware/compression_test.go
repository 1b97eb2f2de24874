// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCompression(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("<p>title</p>", 200)

	tests := []struct {
		name           string
		contentType    string
		acceptEncoding string
		wantGzip       bool
	}{
		{"html with gzip", "text/html; charset=utf-8", "gzip, deflate", true},
		{"svg with gzip", "image/svg+xml", "gzip", true},
		{"json with gzip", "application/json; charset=utf-8", "gzip", true},
		{"png is left alone", "image/png", "gzip", false},
		{"no accept-encoding", "text/html", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := Compression(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.Header().Set("Content-Length", "12345")
				w.WriteHeader(http.StatusOK)
				_, _ = io.WriteString(w, body)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			gzipped := rec.Header().Get("Content-Encoding") == "gzip"
			if gzipped != tt.wantGzip {
				t.Fatalf("Content-Encoding gzip = %v, want %v", gzipped, tt.wantGzip)
			}

			var got []byte
			if gzipped {
				if rec.Header().Get("Content-Length") != "" {
					t.Error("Content-Length should be dropped when compressing")
				}
				zr, err := gzip.NewReader(rec.Body)
				if err != nil {
					t.Fatalf("gzip.NewReader: %v", err)
				}
				defer zr.Close()
				got, err = io.ReadAll(zr)
				if err != nil {
					t.Fatal(err)
				}
			} else {
				got = rec.Body.Bytes()
			}
			if string(got) != body {
				t.Error("body does not round-trip")
			}
		})
	}
}

func TestCompression_ImplicitHeaderSniffsType(t *testing.T) {
	t.Parallel()

	h := Compression(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<!DOCTYPE html><html><body>hello</body></html>")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Errorf("sniffed html should be compressed, headers = %v", rec.Header())
	}
}

package controller

import (
	"net/http"
	"net/http/pprof"
)

// PprofMux returns a ServeMux serving the net/http/pprof handlers at its
// root. The caller mounts it under a debug path and strips the prefix.
func PprofMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)

	return mux
}

package server

import (
	"context"
	"net/http"

	"zinclab/internal/handlers"
	applog "zinclab/internal/log"
	"zinclab/internal/metrics"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/login", handlers.Login)
	mux.HandleFunc("/register", handlers.Register)
	mux.HandleFunc("/logout", handlers.Logout)
	mux.Handle("/dashboard", handlers.RequireAuthentication(http.HandlerFunc(handlers.Dashboard)))
	mux.Handle("/records/new", handlers.RequireAuthentication(http.HandlerFunc(handlers.NewRecord)))
	mux.Handle("/records/", handlers.RequireAuthentication(http.HandlerFunc(handlers.RecordResource)))
	mux.Handle("/export", handlers.RequireAuthentication(http.HandlerFunc(handlers.ExportSelected)))
	mux.HandleFunc("/s/", handlers.SharedRecordView)
	mux.HandleFunc("/", handlers.Home)
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/static"))))
	applog.Debug(context.Background(), "http routes registered")
	return mux
}

// Command queryserver is the thin HTTP front end over the journey-planning
// core: it loads the read-only stores named in a deployment config once at
// startup, then answers one route query per request by wiring together the
// forward/backward access searches, the profile scan, and the route
// builder per §5's per-query pipeline.
package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/exp/slog"

	"github.com/fantassin/transit/config"
	"github.com/fantassin/transit/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the deployment config file")
	calendarPath := flag.String("calendar", "", "optional path to a service calendar JSON file")
	flag.Parse()

	slog.SetDefault(slog.New(logging.NewHandler(os.Stdout, nil)))

	cfg := config.ReadConfig(*configPath)

	manager, err := NewManager(cfg, *calendarPath)
	if err != nil {
		slog.Error("failed to build manager", "error", err)
		os.Exit(1)
	}

	router := httprouter.New()
	MapPost(router, "/v1/route", HandleRoute(manager))

	addr := cfg.Server.ListenAddr
	if addr == "" {
		addr = ":8080"
	}
	slog.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// Package main implements the entry point for the TED notice search
// server, which exposes public procurement notice search over the TED v3
// API plus an asynchronous notice-processing task subsystem.
package main

import (
	"context"
	"log"
	"os"
)

func main() {
	app, err := newApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.taskRunner.Start()

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		app.logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

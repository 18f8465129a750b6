package main

import (
	"os"

	"github.com/coder/quartz"

	"github.com/lox/axiomind/cmd/axiomind/shared"
	"github.com/lox/axiomind/internal/eventbus"
	"github.com/lox/axiomind/internal/handlog"
	"github.com/lox/axiomind/internal/httpapi"
	"github.com/lox/axiomind/internal/session"
)

// PlayCmd starts the HTTP/SSE server: a session manager backed by a
// persistent hand log, an event bus, and the REST surface in
// SPEC_FULL.md §6.2. It runs until interrupted.
type PlayCmd struct {
	Addr    string `default:":8080" help:"HTTP listen address"`
	Debug   bool   `default:"false" help:"Enable debug-level logging"`
	HandLog string `default:"hands.jsonl" help:"Path to append completed hands to"`
}

func (c *PlayCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	ctx := shared.SetupSignalHandlerWithLogger(logger)

	startSeq, err := countRecords(c.HandLog)
	if err != nil {
		return err
	}
	writer, err := handlog.OpenAppend(c.HandLog, quartz.NewReal(), startSeq)
	if err != nil {
		return err
	}
	defer writer.Close()

	bus := eventbus.New(logger)
	manager := session.NewManager(logger, bus, session.WithWriter(writer))
	history := httpapi.NewHistory(c.HandLog)
	settings := httpapi.NewSettingsStore()

	handlers := httpapi.NewHandlers(logger, manager, bus, history, settings)
	server := httpapi.NewServer(logger, handlers, httpapi.WithAddr(c.Addr))

	return server.Run(ctx)
}

// countRecords reports how many hands are already in path, so a
// restarted server's writer continues the existing id sequence instead
// of colliding with hand ids already on disk.
func countRecords(path string) (uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()
	records, err := handlog.ReadAll(f)
	if err != nil {
		return 0, err
	}
	return uint32(len(records)), nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dungeon/internal/events"
	"github.com/vovakirdan/tui-dungeon/internal/flowfield"
	"github.com/vovakirdan/tui-dungeon/internal/pipeline"
	"github.com/vovakirdan/tui-dungeon/internal/population"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
	"github.com/vovakirdan/tui-dungeon/internal/ws"
)

// streamPopulation names the population steered by stream clients.
const streamPopulation = "stream"

var flagHTTPAddr string

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Stream generation events over websocket",
	Long: `Start an HTTP server that runs one generation pipeline and one flow field
and broadcasts their events to websocket clients as {seq, type, payload}.

Endpoints:
  GET  /ws        - event stream; send {"type":"generate","payload":{...}}
                    or {"type":"recompute_flow","payload":{...}}
  POST /generate  - {"seed":1,"rooms_to_generate":12,"min_room_size":3,
                     "max_room_size":8,"radius":32}
  POST /flow      - {"destination":{"X":0,"Y":0},"lower":{"X":-8,"Y":-8},
                     "upper":{"X":8,"Y":8}}
  GET  /flow?x=&y= - flow direction at a world position

Examples:
  dungeon stream
  dungeon stream --addr :9000 --spawner log`,
	RunE: runStream,
}

func init() {
	streamCmd.Flags().StringVar(&flagHTTPAddr, "addr", "", "HTTP listen address (default from config)")
	streamCmd.Flags().StringVar(&flagSpawner, "spawner", "none", "Spawner backend (see 'dungeon spawners')")
}

func runStream(cmd *cobra.Command, _ []string) error {
	addr := flagHTTPAddr
	if addr == "" {
		addr = cfg.Server.HTTPAddr
	}

	logger := newLogger(os.Stderr, "stream")

	spawner, err := registry.Create(flagSpawner, registry.Env{Logger: logger, Out: cmd.OutOrStdout()})
	if err != nil {
		return err
	}

	store := openHistory(logger)
	if store != nil {
		defer store.Close()
	}

	bus := events.NewBus()
	pipe := pipeline.New(cfg.Pipeline(), spawner, bus, logger)
	pipe.SetResultSaver(saverOf(store))

	field := flowfield.New(
		flowfield.WithCellSize(cfg.Navigation.CellSize),
		flowfield.WithMaxCells(cfg.Navigation.MaxCells),
	)
	nav := flowfield.NewNavigator(streamPopulation, population.NewSwarm(), field, bus, logger)
	nav.SetMargin(cfg.Navigation.Margin)

	srv := ws.NewServer(bus, pipe, nav, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{}, 2)
	go func() {
		if err := pipe.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("pipeline stopped", "err", err)
		}
		done <- struct{}{}
	}()
	go func() {
		if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("event forwarder stopped", "err", err)
		}
		done <- struct{}{}
	}()

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", "err", err)
		}
	}()

	logger.Info("streaming", "address", addr)
	err = httpSrv.ListenAndServe()
	stop()
	<-done
	<-done
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("stopped")
	return nil
}

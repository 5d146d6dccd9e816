// Command sim is the demonstration driver for the order book core: it
// generates a synthetic stream of limit/market/cancel commands, drives
// a fresh engine.Book with them, and writes the resulting event log to
// disk. It is deliberately kept outside internal/engine: the random
// event generator and file handling are driver concerns, not core
// matching responsibilities.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"github.com/ZaneH/order-book-v1/internal/engine"
	"github.com/ZaneH/order-book-v1/internal/eventlog"
	"github.com/ZaneH/order-book-v1/internal/types"
)

func main() {
	events := flag.Int("events", 2000, "number of synthetic commands to generate")
	seed := flag.Int64("seed", 42, "random seed")
	out := flag.String("out", "events.log", "event log output path")
	users := flag.Int("users", 8, "number of synthetic trader ids")
	debug := flag.Bool("debug", false, "run the invariant checker after every mutation")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	runID := uuid.New()
	log.Info().Str("run_id", runID.String()).Int64("seed", *seed).Int("events", *events).Msg("starting simulation run")

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal().Err(err).Str("path", *out).Msg("could not create event log")
	}

	sink := eventlog.NewWriterSink(f)

	// A tomb supervises the background flush loop. The engine itself
	// stays synchronous and single-threaded; batching the sink flush
	// on an interval instead of after every write is purely a driver
	// decision about its output destination.
	t := &tomb.Tomb{}
	t.Go(func() error {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-t.Dying():
				return sink.Flush()
			case <-ticker.C:
				if err := sink.Flush(); err != nil {
					return err
				}
			}
		}
	})

	var eng *engine.Book
	if *debug {
		eng = engine.NewDebug(sink)
	} else {
		eng = engine.New(sink)
	}

	rng := rand.New(rand.NewSource(*seed))
	runSimulation(eng, rng, *events, *users)

	t.Kill(nil)
	if err := t.Wait(); err != nil {
		log.Error().Err(err).Msg("flush loop exited with error")
	}
	if err := f.Close(); err != nil {
		log.Error().Err(err).Msg("could not close event log")
	}

	log.Info().
		Str("run_id", runID.String()).
		Uint64("events_logged", eng.EventSeq()).
		Int("resting_orders", eng.RestingOrderCount()).
		Msg("simulation run complete")
}

// runSimulation feeds a pseudo-random mix of limit, market, and cancel
// commands into eng.
func runSimulation(eng *engine.Book, rng *rand.Rand, numEvents, numUsers int) {
	const (
		minPrice   = 90
		maxPrice   = 110
		minQty     = 1
		maxQty     = 50
		limitPct   = 70
		marketPct  = 15
		cancelPct  = 15 // remainder
	)

	var restingIDs []types.OrderId

	for i := 0; i < numEvents; i++ {
		user := types.UserId(rng.Intn(numUsers))
		side := types.Buy
		if rng.Intn(2) == 1 {
			side = types.Sell
		}

		roll := rng.Intn(100)
		switch {
		case roll < limitPct || len(restingIDs) == 0:
			price := types.Price(minPrice + rng.Intn(maxPrice-minPrice+1))
			qty := types.Quantity(minQty + rng.Intn(maxQty-minQty+1))
			tif := types.GTC
			if rng.Intn(5) == 0 {
				tif = types.IOC
			}
			payload, _, ok := eng.AddLimit(user, side, price, qty, tif)
			if ok && payload.Status != types.ImmediateFill {
				restingIDs = append(restingIDs, payload.OrderID)
			}

		case roll < limitPct+marketPct:
			qty := types.Quantity(minQty + rng.Intn(maxQty-minQty+1))
			eng.AddMarket(user, side, qty)

		default:
			idx := rng.Intn(len(restingIDs))
			target := restingIDs[idx]
			eng.Cancel(target)
			restingIDs = append(restingIDs[:idx], restingIDs[idx+1:]...)
		}
	}

	fmt.Fprintf(os.Stderr, "generated %d commands\n", numEvents)
}

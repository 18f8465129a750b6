// Package simulate runs headless bot-vs-bot hands for the CLI's sim
// command: a fresh, independently-seeded engine per hand (so a resume
// never has to replay completed hands to reach the right RNG state),
// a passive check-or-call policy driving internal/ai's baseline
// strategy, and graceful interruption via context cancellation.
package simulate

import (
	"context"
	"os"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/axiomind/internal/ai"
	"github.com/lox/axiomind/internal/cards"
	"github.com/lox/axiomind/internal/engine"
	"github.com/lox/axiomind/internal/evalhand"
	"github.com/lox/axiomind/internal/handlog"
	"github.com/lox/axiomind/internal/potmgr"
	"github.com/lox/axiomind/internal/rules"
)

// fixedEpoch anchors every simulated hand_id to the same date, since a
// simulation run's identity comes from (seed, index), not wall-clock
// time - two runs with the same seed produce byte-identical hand ids.
const fixedEpoch = "20000101"

// Options configures one simulation run.
type Options struct {
	Hands  uint64
	Seed   uint64
	Level  uint8
	Output string
	Resume bool
}

// Result reports how a simulation run ended.
type Result struct {
	Simulated   uint64
	Interrupted bool
	Saved       uint64
	ResumedFrom uint64
}

// Run simulates Options.Hands hands, or the remainder after a resume,
// appending one HandRecord per hand to Options.Output. If ctx is
// canceled it stops before starting the next hand, leaving every
// already-written record flushed on disk.
func Run(ctx context.Context, logger zerolog.Logger, opts Options) (Result, error) {
	var startIdx uint64
	if opts.Resume {
		existing, err := readExisting(opts.Output)
		if err != nil {
			return Result{}, err
		}
		startIdx = uint64(len(existing))
	}

	if startIdx >= opts.Hands {
		return Result{Simulated: opts.Hands, ResumedFrom: startIdx}, nil
	}

	var writer *handlog.Writer
	var err error
	if opts.Resume {
		writer, err = handlog.OpenAppend(opts.Output, quartz.NewReal(), uint32(startIdx))
	} else {
		writer, err = handlog.Create(opts.Output, quartz.NewReal())
	}
	if err != nil {
		return Result{}, err
	}
	defer writer.Close()

	opponent := ai.CreateAI("baseline")

	var i uint64
	for i = startIdx; i < opts.Hands; i++ {
		select {
		case <-ctx.Done():
			return Result{Simulated: i, Interrupted: true, Saved: i, ResumedFrom: startIdx}, nil
		default:
		}

		record, err := playHand(opponent, opts.Seed, i, opts.Level)
		if err != nil {
			return Result{}, err
		}
		if err := writer.Write(record); err != nil {
			return Result{}, err
		}
		logger.Debug().Uint64("hand", i+1).Str("hand_id", record.HandID).Msg("simulated hand")
	}

	return Result{Simulated: opts.Hands, ResumedFrom: startIdx}, nil
}

func readExisting(path string) ([]handlog.HandRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return handlog.ReadAll(f)
}

// blinds mirrors session.GameConfig's stakes formula (level 1: 50/100,
// level 2: 100/200, ...) without importing the session package, which
// owns live-game lifecycle concerns this headless runner has no use for.
func blinds(level uint8) (sb, bb uint32) {
	return uint32(level) * 50, uint32(level) * 100
}

// deriveSeed maps (seed, hand index) to an independent per-hand deck
// seed via a SplitMix64-style finalizer, the same mixing shape
// internal/cards uses to expand a seed into an RNG key. This is what
// lets --resume jump straight to hand K+1's seed instead of replaying
// hands 1..K to reach the same RNG state.
func deriveSeed(seed, index uint64) uint64 {
	x := seed + index*0x9E3779B97F4A9B5D + 1
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// playHand deals and plays out one independent heads-up hand: blinds
// posted, then each street's two actions resolved through opponent's
// proposed intent (coerced from Check to Call when facing a
// non-zero toCall, since the AI interface has no betting-round
// context to know toCall itself - see internal/ai's GetAction
// signature), through showdown and pot award.
func playHand(opponent ai.Opponent, seed uint64, index uint64, level uint8) (handlog.HandRecord, error) {
	handSeed := deriveSeed(seed, index)
	eng := engine.New(&handSeed, level)
	eng.Shuffle()
	if err := eng.DealHand(); err != nil {
		return handlog.HandRecord{}, err
	}

	players := eng.Players()
	before := [2]uint32{players[0].Stack(), players[1].Stack()}

	sb, bb := blinds(level)
	if err := players[0].Bet(sb); err != nil {
		return handlog.HandRecord{}, err
	}
	if err := players[1].Bet(bb); err != nil {
		return handlog.HandRecord{}, err
	}
	contributions := [2]uint64{uint64(sb), uint64(bb)}
	toCall := bb - sb

	var actions []handlog.ActionRecord
	streets := []handlog.Street{handlog.Preflop, handlog.Flop, handlog.Turn, handlog.River}
	firstActor := 0 // button acts first preflop

	for si, street := range streets {
		order := [2]int{firstActor, 1 - firstActor}
		for _, pid := range order {
			intent, amount := opponent.GetAction(eng, pid)
			if intent == rules.IntentCheck && toCall > 0 {
				intent = rules.IntentCall
			}
			validated, err := rules.Validate(players[pid].Stack(), toCall, bb, intent, amount)
			if err != nil {
				return handlog.HandRecord{}, err
			}
			if err := players[pid].Bet(validated.Amount); err != nil {
				return handlog.HandRecord{}, err
			}
			contributions[pid] += uint64(validated.Amount)
			toCall = 0
			actions = append(actions, handlog.ActionRecord{
				PlayerID: pid, Street: street, Action: validated.Kind.String(), Amount: validated.Amount,
			})
		}
		if si < len(streets)-1 {
			firstActor = 1 // big blind acts first on every street after preflop
		}
	}

	board := eng.Board()
	var strengths [2]evalhand.HandStrength
	for i, p := range players {
		hole := p.HoleCards()
		hand := append(append([]cards.Card{}, board...), *hole[0], *hole[1])
		strengths[i] = evalhand.Evaluate(hand)
	}

	var winners []int
	var result string
	switch strengths[0].Compare(strengths[1]) {
	case 1:
		winners, result = []int{0}, "p0"
	case -1:
		winners, result = []int{1}, "p1"
	default:
		winners, result = []int{0, 1}, "split"
	}

	potResult := potmgr.FromContributions(contributions[:])
	pot := potResult.Total()
	share := pot / uint64(len(winners))
	for _, w := range winners {
		players[w].AddChips(uint32(share))
	}

	netResult := map[string]int64{
		"0": int64(players[0].Stack()) - int64(before[0]),
		"1": int64(players[1].Stack()) - int64(before[1]),
	}

	return handlog.HandRecord{
		HandID:    handlog.FormatHandID(fixedEpoch, uint32(index+1)),
		Seed:      &handSeed,
		Actions:   actions,
		Board:     append([]cards.Card{}, board...),
		Result:    result,
		Showdown:  &handlog.ShowdownInfo{Winners: winners},
		NetResult: netResult,
	}, nil
}

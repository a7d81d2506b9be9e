package experiments

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"monopoly/engine"
	"monopoly/experiments/metrics"
	"monopoly/game"
	"monopoly/player"

	"github.com/rs/zerolog/log"
)

const (
	DefaultGames = 100
	Seats        = 3
)

// Config describes a batch of computer-only games.
type Config struct {
	Name    string
	Games   int
	Workers int
	Seed    uint64 // Game i is played with Seed+i
	Rules   *game.Rules
	BaseDir string // Where the CSV files go, empty to skip writing

	// OnGameDone is called once per finished game, from any worker.
	OnGameDone func()
}

type Result struct {
	Records   []metrics.GameRecord
	Summaries []metrics.ProfileSummary
}

// RunProfileExperiment plays cfg.Games seeded games between computer
// participants, rotating profiles across seats from game to game, and
// summarizes how often each profile wins.
func RunProfileExperiment(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Games <= 0 {
		cfg.Games = DefaultGames
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Rules == nil {
		cfg.Rules = game.NewStandardRules()
	}
	if cfg.Name == "" {
		cfg.Name = "profiles"
	}

	log.Info().Msgf("starting %s experiment with %d games on %d workers...", cfg.Name, cfg.Games, cfg.Workers)

	records := make([]metrics.GameRecord, cfg.Games)
	errs := make([]error, cfg.Games)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				records[i], errs[i] = runGame(ctx, cfg, i)
				if cfg.OnGameDone != nil {
					cfg.OnGameDone()
				}
			}
		}()
	}

feed:
	for i := 0; i < cfg.Games; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	for i, err := range errs {
		if err != nil {
			return Result{}, fmt.Errorf("game %d: %w", i+1, err)
		}
	}

	result := Result{Records: records, Summaries: Summarize(records)}
	log.Info().Msgf("completed %s experiment", cfg.Name)

	if cfg.BaseDir == "" {
		return result, nil
	}
	if err := write(cfg.BaseDir, result); err != nil {
		return result, err
	}
	log.Info().Str("dir", cfg.BaseDir).Msg("stored experiment records")
	return result, nil
}

// SeatProfiles rotates the two profiles so every seat sees both over a batch.
func SeatProfiles(gameIndex int) []player.Profile {
	profiles := make([]player.Profile, Seats)
	for seat := range profiles {
		profiles[seat] = player.ProfileForSeat(seat + gameIndex)
	}
	return profiles
}

func runGame(ctx context.Context, cfg Config, index int) (metrics.GameRecord, error) {
	seed := cfg.Seed + uint64(index)
	e := engine.New(engine.WithRules(cfg.Rules), engine.WithSeed(seed))

	profiles := SeatProfiles(index)
	identities := game.PickBots(Seats, "")
	players := make([]game.Participant, Seats)
	deciders := make(map[string]engine.Decider, Seats)
	names := make([]string, Seats)
	for seat, profile := range profiles {
		id := fmt.Sprintf("bot-%d", seat+1)
		players[seat] = game.NewParticipant(id, identities[seat].Name, true, identities[seat].Color, profile.Name, cfg.Rules.StartingCash)
		deciders[id] = player.NewBot(profile)
		names[seat] = profile.Name
	}

	runner := engine.NewRunner(e, e.NewGame(fmt.Sprintf("%s-%d", cfg.Name, index+1), players), deciders)
	runner.Collector = metrics.NewCollector()

	final, gameMetric, err := runner.Run(ctx)
	if err != nil {
		return metrics.GameRecord{}, err
	}

	record := metrics.GameRecord{
		ID:         index + 1,
		Seed:       seed,
		Profiles:   names,
		GameMetric: gameMetric,
	}
	if winner, ok := final.Player(final.WinnerID); ok {
		record.WinnerProfile = winner.Profile
	}
	log.Debug().Int("game", record.ID).Str("winner", record.Winner).Str("reason", string(record.Reason)).Msg("completed game")
	return record, nil
}

// Summarize counts seats and wins per profile, in the order profiles first appear.
func Summarize(records []metrics.GameRecord) []metrics.ProfileSummary {
	var summaries []metrics.ProfileSummary
	index := map[string]int{}
	entry := func(name string) *metrics.ProfileSummary {
		i, ok := index[name]
		if !ok {
			i = len(summaries)
			index[name] = i
			summaries = append(summaries, metrics.ProfileSummary{Profile: name})
		}
		return &summaries[i]
	}

	for _, r := range records {
		for _, name := range r.Profiles {
			entry(name).Seats++
		}
		if r.WinnerProfile != "" {
			entry(r.WinnerProfile).Wins++
		}
	}
	for i := range summaries {
		if summaries[i].Seats > 0 {
			summaries[i].WinRate = float64(summaries[i].Wins) / float64(summaries[i].Seats)
		}
	}
	return summaries
}

func write(baseDir string, result Result) error {
	writer, err := metrics.NewWriter(baseDir)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteGameRecords(result.Records); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteProfileSummary(result.Summaries); err != nil {
		return fmt.Errorf("failed to write profile summary: %w", err)
	}
	return nil
}

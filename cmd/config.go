package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"monopoly/engine"
	"monopoly/game"
	"monopoly/gamemaster"
	"monopoly/meta"
	"monopoly/store"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

var ruleDefaults = map[string]any{
	"starting_cash":         game.DefaultStartingCash,
	"pass_bonus":            game.DefaultPassBonus,
	"jail_fee":              game.DefaultJailFee,
	"max_jail_turns":        game.DefaultMaxJailTurns,
	"turn_limit":            game.DefaultTurnLimit,
	"house_cost_multiplier": game.DefaultHouseCostMultiplier,
	"max_houses":            game.DefaultMaxHouses,
}

func setRuleDefaults() {
	for key, value := range ruleDefaults {
		viper.SetDefault("rules."+key, value)
	}
}

// loadRules reads the rules.* keys key by key, since viper only consults the
// environment for leaf keys. Environment values arrive as strings.
func loadRules() (*game.Rules, error) {
	settings := make(map[string]any, len(ruleDefaults))
	for key := range ruleDefaults {
		settings[key] = viper.Get("rules." + key)
	}

	rules := game.NewStandardRules()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           rules,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}

	switch {
	case rules.StartingCash <= 0:
		return nil, errors.New("rules.starting_cash must be positive")
	case rules.TurnLimit <= 0:
		return nil, errors.New("rules.turn_limit must be positive")
	case rules.MaxJailTurns <= 0:
		return nil, errors.New("rules.max_jail_turns must be positive")
	case rules.MaxHouses <= 0:
		return nil, errors.New("rules.max_houses must be positive")
	case rules.PassBonus < 0 || rules.JailFee < 0 || rules.HouseCostMultiplier < 0:
		return nil, errors.New("rules amounts must not be negative")
	}
	return rules, nil
}

func botDelay() time.Duration {
	if viper.GetBool("fast") {
		return meta.FAST_BOT_DELAY
	}
	return viper.GetDuration("bot_delay")
}

// openKV opens the configured storage backend. The returned func releases it.
func openKV(ctx context.Context) (store.KV, func(), error) {
	switch backend := viper.GetString("storage"); backend {
	case "memory":
		return store.NewMemoryKV(), func() {}, nil
	case "file":
		kv, err := store.NewFileKV(viper.GetString("data_dir"))
		if err != nil {
			return nil, nil, err
		}
		return kv, func() {}, nil
	case "redis":
		kv, err := store.NewRedisKV(ctx, store.RedisConfig{
			Addr:     viper.GetString("redis_addr"),
			Password: viper.GetString("redis_password"),
			DB:       viper.GetInt("redis_db"),
			Prefix:   viper.GetString("redis_prefix"),
		})
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { kv.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// newMaster wires the configured rules, storage and bot pacing into a Master.
func newMaster(ctx context.Context) (*gamemaster.Master, func(), error) {
	rules, err := loadRules()
	if err != nil {
		return nil, nil, err
	}
	kv, release, err := openKV(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	master := gamemaster.New(
		gamemaster.WithEngine(engine.New(engine.WithRules(rules))),
		gamemaster.WithStore(store.New(kv)),
		gamemaster.WithBotDelay(botDelay()),
	)
	return master, func() {
		master.Close()
		release()
	}, nil
}

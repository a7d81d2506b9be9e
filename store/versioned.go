package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type envelope struct {
	Version int             `json:"_version"`
	Data    json.RawMessage `json:"data"`
}

// Versioned wraps payloads in a version tag. A payload that fails to parse or
// carries another version is treated as absent and removed.
type Versioned struct {
	kv      KV
	version int
}

func NewVersioned(kv KV, version int) *Versioned {
	return &Versioned{kv: kv, version: version}
}

// Save stores value under key. A nil value removes the key.
func (v *Versioned) Save(ctx context.Context, key string, value any) error {
	if value == nil {
		return v.Remove(ctx, key)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	raw, err := json.Marshal(envelope{Version: v.version, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode %s envelope: %w", key, err)
	}
	return v.kv.Set(ctx, key, raw)
}

// LoadRaw returns the payload of key without decoding it.
func (v *Versioned) LoadRaw(ctx context.Context, key string) (json.RawMessage, bool, error) {
	raw, err := v.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false, v.discard(ctx, key, "unreadable envelope")
	}
	if env.Version != v.version {
		return nil, false, v.discard(ctx, key, fmt.Sprintf("version %d", env.Version))
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, false, v.discard(ctx, key, "empty payload")
	}
	return env.Data, true, nil
}

// Load decodes the payload of key into out.
func (v *Versioned) Load(ctx context.Context, key string, out any) (bool, error) {
	data, ok, err := v.LoadRaw(ctx, key)
	if !ok || err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, v.discard(ctx, key, "undecodable payload")
	}
	return true, nil
}

func (v *Versioned) Remove(ctx context.Context, key string) error {
	return v.kv.Delete(ctx, key)
}

func (v *Versioned) discard(ctx context.Context, key, reason string) error {
	log.Warn().Str("key", key).Str("reason", reason).Msg("discarding stored payload")
	return v.Remove(ctx, key)
}

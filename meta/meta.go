// meta/meta.go
package meta

import "time"

// STORAGE_VERSION tags every persisted payload. Payloads with another version are discarded.
const STORAGE_VERSION = 1

// SAVED_GAME_KEY holds the snapshot of the session in progress.
const SAVED_GAME_KEY = "monopoly_saved_game"

// LEADERBOARD_KEY holds the list of finished-game results.
const LEADERBOARD_KEY = "monopoly_leaderboard"

// MAX_LEADERBOARD_ENTRIES caps the results list; the newest entries are kept.
const MAX_LEADERBOARD_ENTRIES = 50

// BOT_DELAY paces computer turns.
const BOT_DELAY = 500 * time.Millisecond

// FAST_BOT_DELAY is used when the shell runs in fast mode.
const FAST_BOT_DELAY = 100 * time.Millisecond

// HUMAN_ID is the seat id of the human participant.
const HUMAN_ID = "player-0"

// NUM_BOTS is the number of computer opponents per session.
const NUM_BOTS = 2

package cmd

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"monopoly/meta"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "monopoly",
	Short: "A property-trading board game against two computer opponents",
	Long: `Play a short property-trading board game in the terminal or over HTTP,
or pit the computer profiles against each other in batch simulations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(viper.GetString("log_level"))
	},
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("storage", "file", "storage backend (memory, file, redis)")
	flags.String("data-dir", ".monopoly", "directory for the file storage backend")
	flags.String("redis-addr", "localhost:6379", "redis address for the redis storage backend")
	flags.String("redis-password", "", "redis password")
	flags.Int("redis-db", 0, "redis database number")
	flags.String("redis-prefix", "monopoly:", "prefix for redis keys")
	flags.Duration("bot-delay", meta.BOT_DELAY, "pause before each computer turn")
	flags.Bool("fast", false, "use the short computer turn delay")

	for _, name := range []string{"log-level", "storage", "data-dir", "redis-addr", "redis-password", "redis-db", "redis-prefix", "bot-delay", "fast"} {
		cobra.CheckErr(viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name)))
	}

	setRuleDefaults()

	viper.SetEnvPrefix("MONOPOLY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// initConfig loads .env into the environment, where viper picks up MONOPOLY_*
// overrides such as MONOPOLY_RULES_TURN_LIMIT=30.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env")
	}
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/deadloct/rps-championship-bot/cmd"
	"github.com/deadloct/rps-championship-bot/data"
	"github.com/deadloct/rps-championship-bot/game"
	"github.com/deadloct/rps-championship-bot/lib"
	"github.com/deadloct/rps-championship-bot/settings"
	"github.com/deadloct/rps-championship-bot/stats"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func main() {
	cfg, err := settings.Load()
	if err != nil {
		log.Panic(err)
	}

	log.SetLevel(cfg.LogLevel)

	taunts, err := lib.NewJSONTaunts(data.TauntsJSON)
	if err != nil {
		log.Warnf("unable to load taunts, the computer will stay quiet: %v", err)
	}

	var tg game.TauntGenerator
	if taunts != nil {
		tg = taunts
	}

	reporter, err := game.NewReporter(tg)
	if err != nil {
		log.Panic(err)
	}

	newPicker := func() game.Picker { return game.RandomPicker{} }
	if cfg.Seeded() {
		log.Infof("using seeded opponent (seed %v)", *cfg.Seed)
		newPicker = func() game.Picker { return game.NewSeededPicker(*cfg.Seed) }
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer cancel()

	switch cfg.Mode {
	case settings.ModeDiscord:
		runDiscord(ctx, cfg, reporter, newPicker)
	default:
		runConsole(ctx, cfg, reporter, newPicker)
	}
}

func runConsole(ctx context.Context, cfg settings.Config, reporter *game.Reporter, newPicker func() game.Picker) {
	session := game.NewSession(game.SessionConfig{
		Name:   "console",
		Picker: newPicker(),
		Store:  stats.NewFileStore(cfg.StatsFile),
	})

	if err := cmd.NewConsole(os.Stdin, os.Stdout, session, reporter).Run(ctx); err != nil {
		log.Errorf("console stopped: %v", err)
	}
}

func runDiscord(ctx context.Context, cfg settings.Config, reporter *game.Reporter, newPicker func() game.Picker) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Panic(err)
	}

	games := game.NewManager(game.ManagerConfig{
		StatsDir:  cfg.StatsDir,
		NewPicker: newPicker,
	})
	manager := cmd.NewManager(games, reporter)

	session.Identify.Intents = discordgo.IntentsGuilds
	session.AddHandler(manager.CommandHandler)
	if err := session.Open(); err != nil {
		log.Panic(err)
	}

	if err := manager.RegisterCommands(session); err != nil {
		log.Panic(err)
	}

	log.Info("Bot is now running. Press CTRL-C to exit.")
	<-ctx.Done()

	log.Info("Bot exiting...")
	manager.DeregisterCommands(session)
	shutdown(session, games)
}

// shutdown stops event delivery before the final save so that no round is
// played after it.
func shutdown(gateway interface{ Close() error }, games interface{ Close() }) {
	if err := gateway.Close(); err != nil {
		log.Warnf("error closing the discord session: %v", err)
	}

	games.Close()
}

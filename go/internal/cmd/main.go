package main

import (
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(loadSettings),
	fx.Provide(clockwork.NewRealClock),
	fx.Provide(newDatabase),
	fx.Provide(newRegistry),
	fx.Provide(setupServices),
	fx.Provide(newHub),
	fx.Provide(newLiveHandler),
	fx.Provide(newNatsStatus),
	fx.Provide(newOutboxHealth),
	fx.Provide(setupServer),
)

func main() {
	fx.New(
		Module,
		fx.Invoke(runOutbox),
		fx.Invoke(runLiveConsumer),
		fx.Invoke(runKickoff),
		fx.Invoke(runServer),
	).Run()
}

func setupLogger(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()
}

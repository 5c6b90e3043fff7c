package main

import (
	"github.com/linecard/recorder/cmd/cli"
	"github.com/linecard/recorder/cmd/handler"
	"github.com/linecard/recorder/internal/tracing"
	"github.com/linecard/recorder/internal/util"
	"github.com/rs/zerolog"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	ctx, tp, shutdown := tracing.InitOtel()
	defer shutdown()

	if util.InLambda() {
		handler.Listen(ctx, tp)
		return
	}

	cli.Invoke(ctx)
}

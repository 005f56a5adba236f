package main

import (
	"context"
	_ "time/tzdata"

	"deckbox-api/cmd/deckbox-cli/commands"
	"deckbox-api/internal/components/telemetry"
)

func main() {
	telemetry.InitSlog(false, false)
	commands.ExecuteContext(context.Background())
}

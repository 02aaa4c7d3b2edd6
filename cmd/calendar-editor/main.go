package main

import (
	"context"
	"os"

	"github.com/example/calendar-editor/internal/commands"
)

func main() {
	if err := commands.New().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

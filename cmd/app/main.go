package main

import (
	"context"

	"dispatch/cmd"

	"github.com/labstack/gommon/log"
)

func main() {
	if err := cmd.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("dispatch: %v", err)
	}
}

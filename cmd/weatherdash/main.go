package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/altocumulus/weatherdash/pkg/log"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

package main

import (
	"github.com/joho/godotenv"
	"github.com/studycopilot/studycopilot-cli/cmd"
)

func main() {
	// .env is optional; flags and environment variables cover everything it holds.
	_ = godotenv.Load()

	cmd.Execute()
}

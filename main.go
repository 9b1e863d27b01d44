package main

import (
	"github.com/joho/godotenv"
	"github.com/nikogura/ats-scorer/cmd"
)

func main() {
	// .env is optional.
	_ = godotenv.Load()

	cmd.Execute()
}

package main

import (
	"evalyze_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// Not every environment ships a .env file; absence is fine.
	_ = godotenv.Load()

	app.Run()
}

package main

import (
	"log"

	"github.com/joho/godotenv"
)

// Main function just executes root command `covlens`
// this project structure is inspired from `cobra` package
func main() {
	// load .env file if present, ignore when missing
	_ = godotenv.Load()

	if err := RootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

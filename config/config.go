package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config returns the value of an environment variable, loading .env first.
func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("No .env file found, using system environment")
	}
	return os.Getenv(key)
}

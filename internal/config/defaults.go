package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// defaultConfig returns the built-in fallback values applied when no other
// configuration source provides them.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "student-keeper",
			TokenDuration: time.Hour,
			BcryptCost:    bcrypt.DefaultCost,
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Storage: Storage{
			Uploads: Uploads{Dir: "./uploads"},
		},
		Media: Media{
			Region: "us-east-1",
		},
	}
}

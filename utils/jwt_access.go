package utils

import (
	"log"
	"os"
)

// JWTIssuer is the iss claim stamped on every token the service signs.
const JWTIssuer = "syntora"

var (
	JWTSecretKey               string
	JWTExpirationTime          int64
	RefreshTokenExpirationTime int64
)

func InitJWT() {
	// Tests run without a .env file; fall back to fixed values there.
	if os.Getenv("GO_ENV") == "test" {
		if os.Getenv("JWT_SECRET_KEY") == "" {
			os.Setenv("JWT_SECRET_KEY", "test_secret_key")
		}
	}

	JWTSecretKey = os.Getenv("JWT_SECRET_KEY")
	if JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY not set")
	}

	JWTExpirationTime = int64(GetEnvAsInt("JWT_EXPIRATION_TIME", 3600))
	RefreshTokenExpirationTime = int64(GetEnvAsInt("REFRESH_TOKEN_EXPIRATION_TIME", 604800))
}

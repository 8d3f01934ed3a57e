package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/smilehub/clinic-booking/internal/auth"
	"github.com/smilehub/clinic-booking/internal/config"
	"github.com/smilehub/clinic-booking/pkg/logger"
)

// Использование: operatortoken [-config config.toml] <email>
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if flag.NArg() < 1 {
		log.Fatal("operator email is required")
	}
	email := flag.Arg(0)

	authenticator := auth.NewAuthenticator(
		cfg.Auth.JWTSecret,
		cfg.Auth.Issuer,
		cfg.Auth.OperatorEmails,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)

	// Токен для email вне списка будет отклонен сервером с 403
	if !authenticator.IsAuthorizedOperator(&auth.Identity{Email: email}) {
		log.Warn("%s is not in auth.operator_emails", email)
	}

	token, err := authenticator.Issue(email)
	if err != nil {
		log.Fatal("Failed to issue token: %v", err)
	}

	fmt.Println(token)
}

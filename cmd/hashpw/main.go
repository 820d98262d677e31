package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/cutiefy/cutiefy-backend/pkg/config"
	"github.com/cutiefy/cutiefy-backend/pkg/security"
)

// hashpw prints an Argon2id hash for provisioning the admin credential.
// The output goes into CUTIEFY_ADMIN_PASSWORD_HASH.
func main() {
	password := flag.String("password", "", "plaintext password; read from stdin when omitted")
	flag.Parse()

	_ = godotenv.Load()

	pw := *password
	if pw == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintf(os.Stderr, "read password: %v\n", err)
			os.Exit(1)
		}
		pw = strings.TrimRight(line, "\r\n")
	}

	var cfg config.PasswordConfig
	if err := envconfig.Process(config.EnvPrefix, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "load argon params: %v\n", err)
		os.Exit(1)
	}

	hash, err := security.HashPassword(pw, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

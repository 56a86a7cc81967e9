// Command token issues a bearer token for the heatmap API.
// The signing secret is read from JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jengzang/incident-heatmap-go/internal/auth"
)

func main() {
	subject := flag.String("sub", "", "token subject")
	issuer := flag.String("iss", os.Getenv("AUTH_ISSUER"), "token issuer")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	if *subject == "" {
		log.Fatal("-sub is required")
	}

	token, err := auth.NewJWTGate(secret, *issuer).Issue(*subject, *ttl)
	if err != nil {
		log.Fatal("Failed to issue token: ", err)
	}
	fmt.Println(token)
}

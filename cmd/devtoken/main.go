// Command devtoken prints a signed access token for local testing.
//
//	JWT_SECRET=secret go run ./cmd/devtoken -role admin
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"storefront/internal/adapters/in/http"
	"storefront/internal/core/domain/model/kernel"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	role := flag.String("role", string(kernel.RoleCustomer), "customer, admin, staff or delivery")
	id := flag.String("id", "", "actor id, random when empty")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load(".env")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	parsedRole, err := kernel.ParseRole(*role)
	if err != nil {
		log.Fatalf("%v", err)
	}
	actorID := kernel.NewUUID()
	if *id != "" {
		if actorID, err = kernel.UUIDFromString(*id); err != nil {
			log.Fatalf("%v", err)
		}
	}
	actor, err := kernel.NewActor(actorID, parsedRole)
	if err != nil {
		log.Fatalf("%v", err)
	}

	token, err := http.IssueToken([]byte(secret), actor, time.Now(), *ttl)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(token)
}

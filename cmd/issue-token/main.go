// issue-token mints a JWT accepted by the API's auth middleware. The
// service has no login endpoint; operators issue tokens out of band with
// the same API_SECRET the server validates against.
//
// Usage:
//
//	API_SECRET=... TOKEN_HOUR_LIFESPAN=24 go run ./cmd/issue-token -id 1 -username payroll-ops
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/garnishedge/garnishedge_backend/utils"
)

func main() {
	userID := flag.Int("id", 1, "user id embedded in the token")
	username := flag.String("username", "ops", "username embedded in the token")
	flag.Parse()

	if os.Getenv("TOKEN_HOUR_LIFESPAN") == "" {
		os.Setenv("TOKEN_HOUR_LIFESPAN", "24")
	}

	token, err := utils.JwtGenerate(*userID, *username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

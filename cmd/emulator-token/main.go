// Command emulator-token prints an unsigned ID token accepted by the Firebase
// emulators, for calling Firestore or Auth by hand.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"talkmap/internal/auth"
)

func main() {
	uid := flag.String("uid", os.Getenv("FIRESTORE_ADMIN_UID"), "uid placed in the token")
	email := flag.String("email", "", "optional email claim")
	project := flag.String("project", os.Getenv("GOOGLE_CLOUD_PROJECT"), "Firebase project id")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *uid == "" {
		fmt.Fprintln(os.Stderr, "a uid is required: pass -uid or set FIRESTORE_ADMIN_UID")
		os.Exit(2)
	}

	token, err := auth.GenerateEmulatorToken(*project, *uid, *email, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("Bearer " + token)
}

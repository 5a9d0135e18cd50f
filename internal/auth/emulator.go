package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultProjectID is the project used by the local emulators.
const DefaultProjectID = "local-project-id"

// emulatorClaims mirrors a Firebase ID token. Aud shadows the embedded
// audience so it is encoded as a plain string.
type emulatorClaims struct {
	Aud      string `json:"aud"`
	AuthTime int64  `json:"auth_time"`
	UserID   string `json:"user_id"`
	Email    string `json:"email,omitempty"`

	jwt.RegisteredClaims
}

// GenerateEmulatorToken creates an unsigned ID token accepted by the Firebase
// Auth and Firestore emulators. It is valid for ttl from now.
func GenerateEmulatorToken(projectID, uid, email string, ttl time.Duration) (string, error) {
	if projectID == "" {
		projectID = DefaultProjectID
	}
	now := time.Now().Truncate(time.Second)
	claims := emulatorClaims{
		Aud:      projectID,
		AuthTime: now.Unix(),
		UserID:   uid,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://securetoken.google.com/" + projectID,
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	return t.SignedString(jwt.UnsafeAllowNoneSignatureType)
}

package supabase

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

// GenerateTestJWT mints an HS256 token carrying the given user id in the sub
// claim, signed with SUPABASE_JWT_SECRET. Test helper only; real tokens come
// from Supabase auth.
func GenerateTestJWT(userID string) (string, error) {
	secret := os.Getenv("SUPABASE_JWT_SECRET")

	claims := jwt.MapClaims{
		"sub":  userID,
		"aud":  "authenticated",
		"role": "authenticated",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

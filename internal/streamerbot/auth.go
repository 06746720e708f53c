package streamerbot

import (
	"crypto/sha256"
	"encoding/base64"
)

// authHash answers a Streamer.bot auth challenge: Base64(SHA256(SHA256(password+salt) + challenge))
func authHash(password, salt, challenge string) string {
	secret := sha256.Sum256([]byte(password + salt))
	sum := sha256.Sum256(append(secret[:], challenge...))
	return base64.StdEncoding.EncodeToString(sum[:])
}

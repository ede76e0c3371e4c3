// Package gravatar derives avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar"

// URL returns the gravatar URL for an email address: 200px, PG-rated, with
// the mystery-man default for addresses without a gravatar.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("%s/%s?s=200&r=pg&d=mm", baseURL, hex.EncodeToString(sum[:]))
}

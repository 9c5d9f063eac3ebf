package common

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"regexp"
	"sync"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var (
	snowflakeNode *snowflake.Node
	snowflakeOnce sync.Once
)

// UUIDint64 returns a new snowflake id.
func UUIDint64() int64 {
	snowflakeOnce.Do(func() {
		var err error
		snowflakeNode, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})
	return snowflakeNode.Generate().Int64()
}

// GetSecretSalt returns the hashing salt, overridable via environment.
func GetSecretSalt() string {
	if salt := os.Getenv("DAIRYPOS_SECRET_SALT"); salt != "" {
		return salt
	}
	return "dairypos-salt"
}

// Sha256HashWithSalt hashes value with the given salt.
func Sha256HashWithSalt(value, salt string) string {
	sum := sha256.Sum256([]byte(value + salt))
	return hex.EncodeToString(sum[:])
}

var nonDigitRegexp = regexp.MustCompile(`\D`)

// DigitsOnly strips everything but digits from a phone number.
func DigitsOnly(phone string) string {
	return nonDigitRegexp.ReplaceAllString(phone, "")
}

package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/enigmahq/taskboard/internal/constants"
)

// GenerateJoinCode generates a random 6-character team join code drawn from
// uppercase letters and digits. Uniqueness against existing teams is the
// caller's responsibility.
func GenerateJoinCode() (string, error) {
	charsetLen := big.NewInt(int64(len(constants.JoinCodeCharset)))

	code := make([]byte, constants.JoinCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random index: %w", err)
		}
		code[i] = constants.JoinCodeCharset[n.Int64()]
	}

	return string(code), nil
}

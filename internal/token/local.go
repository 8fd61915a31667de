package token

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// localPrefix marks tokens minted by the in-process credential fallback.
// The prefix doubles as the dispatch discriminator: anything else is
// treated as a database-backend token.
const localPrefix = "local-"

// EncodeLocal mints a fallback session token. The token is self-verifying:
// it embeds the integer user ID, followed by a random suffix so two
// sessions for the same user never share a token.
func EncodeLocal(userID int) string {
	return fmt.Sprintf("%s%d-%s", localPrefix, userID, uuid.NewString())
}

// IsLocal reports whether a token was minted by the fallback issuer.
func IsLocal(token string) bool {
	return strings.HasPrefix(token, localPrefix)
}

// DecodeLocal extracts the user ID embedded in a fallback token.
func DecodeLocal(token string) (int, error) {
	rest, ok := strings.CutPrefix(token, localPrefix)
	if !ok {
		return 0, fmt.Errorf("not a local token")
	}
	idPart, _, ok := strings.Cut(rest, "-")
	if !ok {
		return 0, fmt.Errorf("local token has no suffix")
	}
	id, err := strconv.Atoi(idPart)
	if err != nil {
		return 0, fmt.Errorf("local token has malformed user id: %w", err)
	}
	return id, nil
}

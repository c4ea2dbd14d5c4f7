package auth

import (
	"strings"

	"github.com/kitboardapp/kitboard-server/internal/errors"
)

// Guard checks bearer credentials on mutating endpoints against the
// technician secret configured at startup. Only the Argon2id digest of
// the secret is retained.
type Guard struct {
	digest string
}

// NewGuard hashes the configured technician secret. An empty secret is
// a configuration error and is rejected before the server starts.
func NewGuard(secret string) (*Guard, error) {
	digest, err := HashSecret(secret)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "hashing technician secret")
	}
	return &Guard{digest: digest}, nil
}

// Authorize validates an Authorization header value of the form
// "Bearer <secret>". It returns an unauthorized error when the header
// is missing, malformed, or carries the wrong secret.
func (g *Guard) Authorize(header string) error {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return errors.Unauthorized("missing bearer credentials")
	}

	ok, err := VerifySecret(g.digest, strings.TrimPrefix(header, prefix))
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "verifying technician secret")
	}
	if !ok {
		return errors.Unauthorized("invalid technician secret")
	}
	return nil
}

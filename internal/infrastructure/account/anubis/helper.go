package anubis

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
)

// countsAgainstCircuit reports whether err should trip the breaker. Token
// rejections are the caller's fault and never count.
func countsAgainstCircuit(err error) bool {
	return errors.Is(err, errAnubisTransient)
}

func tokenCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:" + hex.EncodeToString(sum[:])
}

// introspectEndpoint joins base and path. An absolute path wins over base.
func introspectEndpoint(baseURL, path string) string {
	baseURL = strings.TrimSpace(baseURL)
	path = strings.TrimSpace(path)
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	if path == "" {
		return strings.TrimSuffix(baseURL, "/")
	}
	joined, err := url.JoinPath(baseURL, path)
	if err != nil {
		return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	}
	return joined
}

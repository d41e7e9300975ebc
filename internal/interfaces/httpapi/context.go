package httpapi

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-manager/internal/domain/user"
	"github.com/riskibarqy/football-manager/internal/usecase"
)

type principalKey struct{}

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// requirePrincipal returns the caller set by RequireAuth. Handlers mounted
// without it always fail with ErrUnauthorized.
func requirePrincipal(ctx context.Context) (user.Principal, error) {
	if p, ok := ctx.Value(principalKey{}).(user.Principal); ok && p.UserID != "" {
		return p, nil
	}
	return user.Principal{}, fmt.Errorf("%w: no principal on request", usecase.ErrUnauthorized)
}

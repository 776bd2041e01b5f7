package api

import (
	"context"

	"github.com/rpupo63/portfolio-backend/services"
)

type keyType string

const principalKey keyType = "principal"

// ctxWithPrincipal attaches the authenticated principal to the context
func ctxWithPrincipal(ctx context.Context, principal services.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// principalFromCtx retrieves the authenticated principal, if any
func principalFromCtx(ctx context.Context) (services.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(services.Principal)
	return principal, ok
}

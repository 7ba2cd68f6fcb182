package entity

import "context"

type (
	CtxKeyIP       struct{}
	CtxKeyIdentity struct{}
)

func IdentityFromContext(ctx context.Context) (ResolvedIdentity, error) {
	identity, ok := ctx.Value(CtxKeyIdentity{}).(ResolvedIdentity)
	if !ok {
		return ResolvedIdentity{}, ErrUnauthorized
	}

	return identity, nil
}

func SetIdentityToContext(ctx context.Context, identity ResolvedIdentity) context.Context {
	return context.WithValue(ctx, CtxKeyIdentity{}, identity)
}

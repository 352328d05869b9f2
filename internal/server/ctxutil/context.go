package ctxutil

import "context"

type contextKeyEmitClientAddr struct{}

func WithEmitClientAddr(ctx context.Context, remoteAddr string) context.Context {
	return context.WithValue(ctx, contextKeyEmitClientAddr{}, remoteAddr)
}

func GetEmitClientAddr(ctx context.Context) string {
	addr, _ := ctx.Value(contextKeyEmitClientAddr{}).(string)
	return addr
}

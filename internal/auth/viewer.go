package auth

import (
	"context"
)

// Viewer is the per-request identity annotation produced by the identity
// middleware. Authenticated is false when no valid token accompanied the
// request; rejection is left to each use case.
type Viewer struct {
	Identity
	Authenticated bool
}

type viewerKeyType struct{}

var viewerKey viewerKeyType

// WithViewer returns a context carrying the request's viewer.
func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

// ViewerFrom extracts the viewer from the context. The zero Viewer
// (unauthenticated) is returned when none was attached.
func ViewerFrom(ctx context.Context) Viewer {
	v, _ := ctx.Value(viewerKey).(Viewer)
	return v
}

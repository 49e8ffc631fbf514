package httpapi

import "context"

// serverBaseCtx is canceled on process shutdown so handlers can stop
// in-flight work. It stays Background until the daemon installs one.
var serverBaseCtx = context.Background()

// SetBaseContext installs the process-level context observed by all
// handlers. A nil ctx resets to Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	serverBaseCtx = ctx
}

// joinContexts derives a context from req that is additionally canceled when
// base is done, so in-flight work stops on process shutdown. Values and
// deadlines of req carry over. The cancel func must be called when the
// handler returns to release the watcher goroutine.
func joinContexts(base, req context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(req)
	go func() {
		select {
		case <-base.Done():
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

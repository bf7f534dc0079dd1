package trap

import "context"

// Dispatcher re-publishes a trap payload as an externally observable event.
type Dispatcher interface {
	// DispatchHeat emits payload verbatim; the payload is opaque bytes and is
	// never validated. origin identifies the caller for allow-list checks; must
	// return ErrUnauthorizedDispatch (wrapped) when origin is not permitted.
	DispatchHeat(ctx context.Context, origin string, payload []byte) error
}

// AllowList is the set of origins permitted to dispatch. An empty AllowList
// permits every caller, matching the open base design.
type AllowList map[string]struct{}

// NewAllowList builds an AllowList from the given origins.
func NewAllowList(origins ...string) AllowList {
	al := make(AllowList, len(origins))
	for _, o := range origins {
		al[o] = struct{}{}
	}
	return al
}

// Permits reports whether origin may dispatch.
func (a AllowList) Permits(origin string) bool {
	if len(a) == 0 {
		return true
	}
	_, ok := a[origin]
	return ok
}

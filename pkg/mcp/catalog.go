package mcp

import "sync"

// minimalTools is the catalog advertised in lazy mode before the full load.
// It is sized to let a client bootstrap without the full schema payload.
var minimalTools = []string{
	"load_all_tools",
	"list_nodes",
	"get_cluster_status",
}

// Catalog tracks which tool catalog is currently advertised. In lazy mode
// the server starts with the minimal set and switches to the full set when
// load_all_tools is called; the switch raises a pending-notification flag
// that the transport drains into a notifications/tools/list_changed message.
//
// The three fields form one unit guarded by one mutex. Reading the state,
// the load transition, and the notification check-and-clear each take the
// lock once, so a load and a concurrent drain cannot lose the notification.
type Catalog struct {
	mu            sync.Mutex
	lazy          bool
	fullLoaded    bool
	notifyPending bool
}

// NewCatalog creates a catalog. With lazy false the full set is advertised
// from the start and LoadAll is a no-op.
func NewCatalog(lazy bool) *Catalog {
	return &Catalog{
		lazy:       lazy,
		fullLoaded: !lazy,
	}
}

// Full reports whether the full catalog is currently advertised.
func (c *Catalog) Full() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fullLoaded
}

// LoadAll switches to the full catalog. It returns true only on the actual
// transition; repeat calls succeed without re-raising the notification flag.
func (c *Catalog) LoadAll() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fullLoaded {
		return false
	}
	c.fullLoaded = true
	c.notifyPending = true
	return true
}

// TakeNotification reports whether a list_changed notification is due and
// clears the flag. At most one caller observes true per transition.
func (c *Catalog) TakeNotification() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.notifyPending {
		return false
	}
	c.notifyPending = false
	return true
}

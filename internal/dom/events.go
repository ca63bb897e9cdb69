package dom

import (
	"context"

	"golang.org/x/net/html"
)

// Event is delivered to listeners by Dispatch.
type Event struct {
	Type    string
	Target  *html.Node
	Context context.Context
}

type Listener func(Event)

// AddEventListener registers fn for events of type typ on target.
// A nil target is ignored.
func (d *Document) AddEventListener(target *html.Node, typ string, fn Listener) {
	if target == nil || fn == nil {
		return
	}
	d.listenersMu.Lock()
	defer d.listenersMu.Unlock()

	byType, ok := d.listeners[target]
	if !ok {
		byType = make(map[string][]Listener)
		d.listeners[target] = byType
	}
	byType[typ] = append(byType[typ], fn)
}

// Dispatch synchronously runs the listeners registered for typ on target,
// in registration order, and reports how many ran. The document lock is not
// held while listeners run.
func (d *Document) Dispatch(ctx context.Context, target *html.Node, typ string) int {
	d.listenersMu.RLock()
	fns := append([]Listener(nil), d.listeners[target][typ]...)
	d.listenersMu.RUnlock()

	ev := Event{Type: typ, Target: target, Context: ctx}
	for _, fn := range fns {
		fn(ev)
	}
	return len(fns)
}

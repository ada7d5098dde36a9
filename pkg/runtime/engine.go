package runtime

import (
	"github.com/rs/zerolog"

	"github.com/lumo-dev/lumo/internal/errors"
	"github.com/lumo-dev/lumo/pkg/dom"
	"github.com/lumo-dev/lumo/pkg/events"
	"github.com/lumo-dev/lumo/pkg/telemetry"
	"github.com/lumo-dev/lumo/pkg/vdom"
)

// Config configures an Engine. The zero value yields a working engine
// with a fresh document, a discarding sink, and no metrics.
type Config struct {
	// Document is the render target. A nil Document creates a new one.
	Document *dom.Document

	// Sink receives recovered errors. Defaults to telemetry.NopSink.
	Sink telemetry.Sink

	// Logger emits engine debug logs. Defaults to a no-op logger.
	Logger *zerolog.Logger

	// Metrics, when set, counts renders, commits, effects, and target
	// mutations.
	Metrics *Metrics

	// Debug enables hook-order validation; violations panic with coded
	// errors instead of corrupting hook state silently.
	Debug bool
}

// Engine owns a document, a scheduler, and the set of mounted roots. It
// is the single explicit context value the component trees run under;
// there is no ambient global state.
type Engine struct {
	doc       *dom.Document
	sink      telemetry.Sink
	log       zerolog.Logger
	metrics   *Metrics
	scheduler *Scheduler
	debug     bool
	roots     map[*dom.Node]*root
}

// root is one mounted tree: a container, its dispatcher, and the virtual
// tree most recently rendered into it.
type root struct {
	eng        *Engine
	container  *dom.Node
	dispatcher *events.Dispatcher
	tree       *vdom.VNode
}

// New creates an engine from cfg.
func New(cfg Config) *Engine {
	doc := cfg.Document
	if doc == nil {
		doc = dom.NewDocument()
	}
	sink := cfg.Sink
	if sink == nil {
		sink = telemetry.NopSink{}
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	e := &Engine{
		doc:       doc,
		sink:      sink,
		log:       log,
		metrics:   cfg.Metrics,
		scheduler: NewScheduler(sink, cfg.Metrics),
		debug:     cfg.Debug,
		roots:     make(map[*dom.Node]*root),
	}
	if cfg.Metrics != nil {
		doc.Observe(func(m dom.Mutation) {
			cfg.Metrics.Mutation(m.Op.String())
		})
	}
	return e
}

// Document returns the engine's render target.
func (e *Engine) Document() *dom.Document { return e.doc }

// Render mounts v into container, or reconciles it against the tree
// previously rendered there. It returns the first live node the tree
// produced (nil for an empty tree). Only a missing container fails the
// call; render errors inside the tree degrade per the boundary protocol.
func (e *Engine) Render(v *vdom.VNode, container *dom.Node) (*dom.Node, error) {
	if container == nil {
		return nil, errors.New("E100")
	}

	rt := e.roots[container]
	if rt == nil {
		rt = &root{
			eng:        e,
			container:  container,
			dispatcher: events.NewDispatcher(e.doc, container, e.sink),
		}
		e.roots[container] = rt
		e.doc.ClearContainer(container)
		e.log.Debug().Str("container", container.NID()).Msg("mounting root")
		rt.mount(v, container, nil, nil)
	} else {
		rt.patch(rt.tree, v, container, nil)
	}
	rt.tree = v

	e.scheduler.Flush()
	return firstLive(v), nil
}

// RenderInto is Render addressed by container identifier.
func (e *Engine) RenderInto(v *vdom.VNode, containerID string) (*dom.Node, error) {
	container := e.doc.Container(containerID)
	if container == nil {
		return nil, errors.New("E100").With("container", containerID)
	}
	return e.Render(v, container)
}

// Unmount tears down the tree mounted in container. It reports whether a
// tree was mounted there.
func (e *Engine) Unmount(container *dom.Node) bool {
	rt := e.roots[container]
	if rt == nil {
		return false
	}
	e.log.Debug().Str("container", container.NID()).Msg("unmounting root")
	rt.unmount(rt.tree, container, true)
	rt.dispatcher.Close()
	delete(e.roots, container)
	e.scheduler.Flush()
	return true
}

// Dispatch delivers a native event and drains the updates it triggered.
// This is the entry point through which N synchronous state writes in one
// handler coalesce into a single commit.
func (e *Engine) Dispatch(evt *dom.NativeEvent) {
	e.doc.Emit(evt)
	e.scheduler.Flush()
}

// Flush drains pending updates scheduled outside an engine entry point.
func (e *Engine) Flush() {
	e.scheduler.Flush()
}

// Root pairs an engine with one container for the common
// render/unmount cycle.
type Root struct {
	eng       *Engine
	container *dom.Node
}

// CreateRoot binds a container for repeated renders.
func (e *Engine) CreateRoot(container *dom.Node) *Root {
	return &Root{eng: e, container: container}
}

// Render renders v into the root's container.
func (r *Root) Render(v *vdom.VNode) (*dom.Node, error) {
	return r.eng.Render(v, r.container)
}

// Unmount tears down the root's tree.
func (r *Root) Unmount() bool {
	return r.eng.Unmount(r.container)
}

// Container returns the root's container node.
func (r *Root) Container() *dom.Node { return r.container }

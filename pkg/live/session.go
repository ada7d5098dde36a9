package live

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lumo-dev/lumo/pkg/dom"
	"github.com/lumo-dev/lumo/pkg/protocol"
	"github.com/lumo-dev/lumo/pkg/runtime"
	"github.com/lumo-dev/lumo/pkg/telemetry"
)

const containerID = "app"

// Session is one connected client: a private document, a private engine,
// and the websocket carrying patches out and events in.
//
// The engine is single-threaded, so all engine access is serialized
// through mu. The read loop is the only goroutine dispatching events.
type Session struct {
	id     string
	server *Server
	conn   *websocket.Conn
	log    zerolog.Logger

	mu        sync.Mutex // guards eng, doc, pending
	eng       *runtime.Engine
	doc       *dom.Document
	container *dom.Node
	pending   []dom.Mutation

	writeMu sync.Mutex // gorilla allows one concurrent writer

	closeOnce sync.Once
	closed    chan struct{}
}

// newSession builds the per-connection document and engine, renders the
// app, and sends the greeting plus the initial patch batch.
func newSession(s *Server, conn *websocket.Conn, id string) (*Session, error) {
	log := s.log.With().Str("session", id).Logger()

	sess := &Session{
		id:     id,
		server: s,
		conn:   conn,
		log:    log,
		closed: make(chan struct{}),
	}

	doc := dom.NewDocument()
	doc.Observe(sess.record)

	sink := telemetry.NewLogSink(log)
	eng := runtime.New(runtime.Config{
		Document: doc,
		Sink:     sink,
		Logger:   &log,
		Debug:    s.cfg.Debug,
	})

	sess.doc = doc
	sess.eng = eng
	sess.container = doc.CreateContainer(containerID)

	if _, err := eng.Render(s.app(), sess.container); err != nil {
		return nil, err
	}

	hello := protocol.Hello{
		SessionID:   id,
		ContainerID: containerID,
		Version:     protocol.ProtocolVersion,
	}
	if err := sess.write(hello.Encode()); err != nil {
		return nil, err
	}
	if err := sess.flushPatches(); err != nil {
		return nil, err
	}
	return sess, nil
}

// record accumulates document mutations; they are drained into one patch
// frame after each engine entry point.
func (sess *Session) record(m dom.Mutation) {
	sess.pending = append(sess.pending, m)
}

// run drives the session until the peer disconnects or the session is
// closed. It starts a keepalive pinger and then owns the read loop.
func (sess *Session) run(ctx context.Context) {
	sess.conn.SetReadLimit(sess.server.cfg.ReadLimit)
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(3 * sess.server.cfg.PingInterval))
	})
	sess.conn.SetReadDeadline(time.Now().Add(3 * sess.server.cfg.PingInterval))

	go sess.pingLoop()

	for {
		select {
		case <-sess.closed:
			return
		default:
		}

		msgType, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.log.Warn().Err(err).Msg("read failed")
			}
			sess.close()
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		frame, err := protocol.DecodeFrame(data)
		if err != nil {
			sess.log.Warn().Err(err).Msg("malformed frame")
			sess.write(protocol.EncodeError("E600", "malformed frame"))
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			sess.handleEvent(ctx, frame.Payload)
		case protocol.FramePing:
			sess.write((&protocol.Frame{Type: protocol.FramePong}).Encode())
		case protocol.FramePong:
		default:
			sess.log.Warn().Stringer("type", frame.Type).Msg("unexpected frame")
		}
	}
}

// handleEvent decodes an input event, dispatches it through the engine,
// and streams the resulting mutations back as one patch frame.
func (sess *Session) handleEvent(ctx context.Context, payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		sess.log.Warn().Err(err).Msg("malformed event")
		sess.write(protocol.EncodeError("E600", "malformed event"))
		return
	}

	_, span := sess.server.tracer.Start(ctx, "session.dispatch",
		trace.WithAttributes(
			attribute.String("event.kind", ev.Kind),
			attribute.String("event.target", ev.Target),
		))
	defer span.End()

	sess.server.metrics.eventReceived(ev.Kind)

	sess.mu.Lock()
	target := sess.doc.NodeByNID(ev.Target)
	if target == nil {
		sess.mu.Unlock()
		span.SetStatus(codes.Error, "target not in document")
		sess.log.Debug().
			Str("target", ev.Target).
			Str("kind", ev.Kind).
			Msg("event target not in document")
		return
	}
	sess.eng.Dispatch(dom.NewNativeEvent(ev.Kind, target, ev.Value))
	sess.mu.Unlock()

	if err := sess.flushPatches(); err != nil {
		sess.log.Warn().Err(err).Msg("patch write failed")
		sess.close()
	}
}

// flushPatches drains recorded mutations into one patch frame. An empty
// batch writes nothing.
func (sess *Session) flushPatches() error {
	sess.mu.Lock()
	muts := sess.pending
	sess.pending = nil
	sess.mu.Unlock()

	if len(muts) == 0 {
		return nil
	}

	data := protocol.EncodePatches(muts)
	sess.server.metrics.patchSent(len(muts), len(data))
	return sess.write(data)
}

func (sess *Session) write(data []byte) error {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	sess.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return sess.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (sess *Session) pingLoop() {
	ticker := time.NewTicker(sess.server.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-sess.closed:
			return
		case <-ticker.C:
			sess.writeMu.Lock()
			sess.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			err := sess.conn.WriteMessage(websocket.PingMessage, nil)
			sess.writeMu.Unlock()
			if err != nil {
				sess.close()
				return
			}
		}
	}
}

// close tears the session down once: the engine's tree is unmounted and
// the socket closed.
func (sess *Session) close() {
	sess.closeOnce.Do(func() {
		close(sess.closed)
		sess.mu.Lock()
		sess.eng.Unmount(sess.container)
		sess.mu.Unlock()
		sess.conn.Close()
	})
}

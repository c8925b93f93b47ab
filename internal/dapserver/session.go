package dapserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"github.com/google/go-dap"
	"github.com/google/uuid"

	"github.com/qdb-debug/qdb/internal/ctxlog"
	"github.com/qdb-debug/qdb/internal/engine"
	"github.com/qdb-debug/qdb/internal/fileaccess"
	"github.com/qdb-debug/qdb/internal/launch"
)

// ReadWriter is the transport a session runs over.
type ReadWriter interface {
	io.Reader
	io.Writer
}

// session is one DAP conversation. Requests are dispatched sequentially;
// responses and events funnel through sendQueue so a single goroutine owns
// the writer.
type session struct {
	id string
	rw *bufio.ReadWriter

	sendQueue chan dap.Message
	sendWg    sync.WaitGroup

	runtime  engine.Runtime
	accessor fileaccess.Accessor

	launched bool
	done     bool
}

func newSession(rw ReadWriter, runtime engine.Runtime, accessor fileaccess.Accessor) *session {
	return &session{
		id:        uuid.NewString(),
		rw:        bufio.NewReadWriter(bufio.NewReader(rw), bufio.NewWriter(rw)),
		sendQueue: make(chan dap.Message),
		runtime:   runtime,
		accessor:  accessor,
	}
}

// run processes requests until the client disconnects or the stream ends.
func (s *session) run(ctx context.Context) {
	logger := ctxlog.FromContext(ctx).With("session_id", s.id)
	ctx = ctxlog.WithLogger(ctx, logger)

	go s.sendFromQueue()

	for !s.done {
		if err := s.handleRequest(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				logger.Debug("Client stream ended.")
				break
			}
			// A decode failure for an unsupported command is survivable;
			// anything else means the stream is unusable.
			var decodeErr *dap.DecodeProtocolMessageFieldError
			if errors.As(err, &decodeErr) {
				logger.Debug("Unsupported or malformed message.", "error", err)
				s.send(newErrorResponse(0, "", "unsupported or malformed message: "+err.Error()))
				continue
			}
			logger.Warn("Session read failed.", "error", err)
			break
		}
	}

	if s.runtime != nil && s.launched {
		if err := s.runtime.Terminate(ctx); err != nil {
			logger.Warn("Runtime termination on session end failed.", "error", err)
		}
	}

	s.sendWg.Wait()
	close(s.sendQueue)
}

func (s *session) handleRequest(ctx context.Context) error {
	request, err := dap.ReadProtocolMessage(s.rw.Reader)
	if err != nil {
		return err
	}

	s.sendWg.Add(1)
	defer s.sendWg.Done()
	s.dispatchRequest(ctx, request)
	return nil
}

func (s *session) dispatchRequest(ctx context.Context, request dap.Message) {
	switch request := request.(type) {
	case *dap.InitializeRequest:
		s.onInitializeRequest(request)
	case *dap.LaunchRequest:
		s.onLaunchRequest(ctx, request)
	case *dap.SetExceptionBreakpointsRequest:
		response := &dap.SetExceptionBreakpointsResponse{}
		response.Response = *newResponse(request.Seq, request.Command)
		s.send(response)
	case *dap.ConfigurationDoneRequest:
		response := &dap.ConfigurationDoneResponse{}
		response.Response = *newResponse(request.Seq, request.Command)
		s.send(response)
	case *dap.ThreadsRequest:
		response := &dap.ThreadsResponse{}
		response.Response = *newResponse(request.Seq, request.Command)
		response.Body.Threads = []dap.Thread{{Id: 1, Name: "main"}}
		s.send(response)
	case *dap.TerminateRequest:
		s.onTerminateRequest(ctx, request)
	case *dap.DisconnectRequest:
		s.onDisconnectRequest(ctx, request)
	default:
		s.send(newErrorResponse(seqOf(request), commandOf(request), "request not supported by the qdb bootstrap layer"))
	}
}

func (s *session) onInitializeRequest(request *dap.InitializeRequest) {
	response := &dap.InitializeResponse{}
	response.Response = *newResponse(request.Seq, request.Command)
	response.Body.SupportsConfigurationDoneRequest = true
	response.Body.SupportsTerminateRequest = true
	// Everything execution-level is the engine's to claim once present.
	response.Body.SupportsStepBack = false
	response.Body.SupportsRestartRequest = false

	s.send(&dap.InitializedEvent{Event: *newEvent("initialized")})
	s.send(response)
}

func (s *session) onLaunchRequest(ctx context.Context, request *dap.LaunchRequest) {
	logger := ctxlog.FromContext(ctx)

	var req launch.Request
	if err := json.Unmarshal(request.Arguments, &req); err != nil {
		s.send(newErrorResponse(request.Seq, request.Command, "invalid launch arguments"))
		return
	}
	if err := launch.Validate(req); err != nil {
		s.send(newErrorResponse(request.Seq, request.Command, err.Error()))
		return
	}
	if req.Program == "" {
		// An unresolved request must never reach this point; reject rather
		// than guess.
		s.send(newErrorResponse(request.Seq, request.Command, launch.ErrNoProgram.Error()))
		return
	}
	if s.runtime == nil {
		s.send(newErrorResponse(request.Seq, request.Command, engine.ErrNotAvailable.Error()))
		return
	}

	if err := s.runtime.Launch(ctx, req, s.accessor); err != nil {
		s.send(newErrorResponse(request.Seq, request.Command, "launch failed: "+err.Error()))
		return
	}
	s.launched = true
	logger.Info("Program launched.", "program", req.Program, "stop_on_entry", req.StopOnEntry)

	response := &dap.LaunchResponse{}
	response.Response = *newResponse(request.Seq, request.Command)
	s.send(response)
}

func (s *session) onTerminateRequest(ctx context.Context, request *dap.TerminateRequest) {
	if s.runtime != nil && s.launched {
		if err := s.runtime.Terminate(ctx); err != nil {
			s.send(newErrorResponse(request.Seq, request.Command, "terminate failed: "+err.Error()))
			return
		}
		s.launched = false
	}
	response := &dap.TerminateResponse{}
	response.Response = *newResponse(request.Seq, request.Command)
	s.send(response)
	s.send(&dap.TerminatedEvent{Event: *newEvent("terminated")})
}

func (s *session) onDisconnectRequest(ctx context.Context, request *dap.DisconnectRequest) {
	response := &dap.DisconnectResponse{}
	response.Response = *newResponse(request.Seq, request.Command)
	s.send(response)
	s.done = true
}

func (s *session) send(message dap.Message) {
	s.sendQueue <- message
}

// sendFromQueue is the sole writer to the connection. It exits when
// sendQueue closes at the end of run.
func (s *session) sendFromQueue() {
	for message := range s.sendQueue {
		dap.WriteProtocolMessage(s.rw.Writer, message)
		s.rw.Flush()
	}
}

func seqOf(message dap.Message) int {
	if request, ok := message.(dap.RequestMessage); ok {
		return request.GetRequest().Seq
	}
	return 0
}

func commandOf(message dap.Message) string {
	if request, ok := message.(dap.RequestMessage); ok {
		return request.GetRequest().Command
	}
	return ""
}

func newEvent(event string) *dap.Event {
	return &dap.Event{
		ProtocolMessage: dap.ProtocolMessage{Seq: 0, Type: "event"},
		Event:           event,
	}
}

func newResponse(requestSeq int, command string) *dap.Response {
	return &dap.Response{
		ProtocolMessage: dap.ProtocolMessage{Seq: 0, Type: "response"},
		Command:         command,
		RequestSeq:      requestSeq,
		Success:         true,
	}
}

func newErrorResponse(requestSeq int, command string, message string) *dap.ErrorResponse {
	er := &dap.ErrorResponse{}
	er.Response = *newResponse(requestSeq, command)
	er.Success = false
	er.Message = message
	er.Body = dap.ErrorResponseBody{Error: &dap.ErrorMessage{Id: 1000, Format: message}}
	return er
}

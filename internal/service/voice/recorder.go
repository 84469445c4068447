// Package voice tracks the lifecycle of device speech-recognition sessions.
// The device owns the recognizer; this service enforces the ordering rules:
// at most one active recording, and the final transcript of a session is
// submitted exactly once, even when a stop races the closing events.
package voice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	voicemodel "github.com/ecosrev/ecosrev-backend/internal/model/voice"
)

var (
	ErrAlreadyRecording = errors.New("recording already in progress")
	ErrNotRecording     = errors.New("no active recording")
)

// Bridge is the device speech capability: ask for microphone permission,
// start a recognition session, stop it. Recognizer events flow back through
// Recorder.Process.
type Bridge interface {
	RequestPermission(ctx context.Context) (bool, error)
	Start(ctx context.Context, opts Options) error
	Stop(ctx context.Context) error
}

// Options configures one recognition session.
type Options struct {
	Language string `json:"language"`
}

// SubmitFunc receives the final transcript of a recording session. It is
// invoked at most once per session.
type SubmitFunc func(ctx context.Context, transcript string)

// Recorder serializes recognition sessions over one Bridge.
type Recorder struct {
	mu         sync.Mutex
	bridge     Bridge
	submit     SubmitFunc
	recording  bool
	transcript string
	submitted  bool
}

// NewRecorder wires a Bridge to the transcript consumer.
func NewRecorder(bridge Bridge, submit SubmitFunc) *Recorder {
	return &Recorder{bridge: bridge, submit: submit}
}

// Recording reports whether a recognition session is active.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Start begins a recognition session. A second Start while one is active
// fails with ErrAlreadyRecording; callers surface that instead of spawning a
// parallel recognizer.
func (r *Recorder) Start(ctx context.Context, opts Options) error {
	r.mu.Lock()
	if r.recording {
		r.mu.Unlock()
		return ErrAlreadyRecording
	}
	r.recording = true
	r.transcript = ""
	r.submitted = false
	r.mu.Unlock()

	if err := r.bridge.Start(ctx, opts); err != nil {
		r.mu.Lock()
		r.recording = false
		r.mu.Unlock()
		return err
	}
	return nil
}

// Stop asks the device to terminate the active session. The session stays
// marked active until its end event arrives, so an in-flight final
// transcript still gets delivered.
func (r *Recorder) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return ErrNotRecording
	}
	r.mu.Unlock()

	return r.bridge.Stop(ctx)
}

// Process consumes one recognizer event. End events reset the session and
// hand the last final transcript, if any, to the submit callback exactly
// once. Error events reset the session; "no-speech" and "aborted" are
// benign and only logged, every other code is returned to the caller.
func (r *Recorder) Process(ctx context.Context, ev voicemodel.Event) error {
	switch ev.Type {
	case voicemodel.EventStart:
		return nil

	case voicemodel.EventResult:
		r.mu.Lock()
		if ev.IsFinal && ev.Transcript != "" {
			r.transcript = ev.Transcript
		}
		r.mu.Unlock()
		return nil

	case voicemodel.EventEnd:
		r.mu.Lock()
		transcript := ""
		if r.transcript != "" && !r.submitted {
			transcript = r.transcript
			r.submitted = true
		}
		r.recording = false
		r.mu.Unlock()

		if transcript != "" && r.submit != nil {
			r.submit(ctx, transcript)
		}
		return nil

	case voicemodel.EventError:
		r.mu.Lock()
		r.recording = false
		r.mu.Unlock()

		if benignError(ev.Code) {
			log.Printf("[voice] recognition ended without speech: %s", ev.Code)
			return nil
		}
		return fmt.Errorf("speech recognition failed: %s", ev.Code)

	default:
		return fmt.Errorf("unknown recognizer event %q", ev.Type)
	}
}

// benignError classifies recognizer errors that need no user-facing
// notice.
func benignError(code string) bool {
	return code == "no-speech" || code == "aborted"
}

package lbevent_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/leafbridge/leafbridge-hello/lbevent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	level   slog.Level
	message string
	details string
}

func (e testEvent) Component() string  { return "test" }
func (e testEvent) Level() slog.Level  { return e.level }
func (e testEvent) Message() string    { return e.message }
func (e testEvent) Details() string    { return e.details }
func (e testEvent) Attrs() []slog.Attr { return []slog.Attr{slog.String("message", e.message)} }

type failingHandler struct{}

func (failingHandler) Name() string                { return "failing" }
func (failingHandler) Handle(lbevent.Record) error { return errors.New("disk full") }

func TestRecorderWithoutHandler(t *testing.T) {
	var rec lbevent.Recorder
	assert.NoError(t, rec.Record(testEvent{message: "dropped"}))
}

func TestBasicHandler(t *testing.T) {
	var buf bytes.Buffer
	rec := lbevent.Recorder{Handler: lbevent.NewBasicHandler(&buf, slog.LevelInfo)}

	require.NoError(t, rec.Record(testEvent{level: slog.LevelDebug, message: "hidden"}))
	require.NoError(t, rec.Record(testEvent{level: slog.LevelInfo, message: "shown", details: "extra"}))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.NotContains(t, out, "extra", "details are only printed at debug level")
}

func TestBasicHandlerDetails(t *testing.T) {
	var buf bytes.Buffer
	rec := lbevent.Recorder{Handler: lbevent.NewBasicHandler(&buf, slog.LevelDebug)}
	require.NoError(t, rec.Record(testEvent{level: slog.LevelInfo, message: "shown", details: "extra"}))
	assert.Contains(t, buf.String(), "extra")
}

func TestLoggedHandler(t *testing.T) {
	var buf bytes.Buffer
	rec := lbevent.Recorder{Handler: lbevent.LoggedHandler{
		Handler: slog.NewJSONHandler(&buf, nil),
	}}
	require.NoError(t, rec.Record(testEvent{level: slog.LevelWarn, message: "structured"}))
	assert.Contains(t, buf.String(), `"component":"test"`)
	assert.Contains(t, buf.String(), `"msg":"structured"`)
}

func TestMultiHandlerErrors(t *testing.T) {
	var buf bytes.Buffer
	handler := lbevent.MultiHandler{
		lbevent.NewBasicHandler(&buf, slog.LevelInfo),
		failingHandler{},
	}
	rec := lbevent.Recorder{Handler: handler}

	err := rec.Record(testEvent{level: slog.LevelInfo, message: "fan out"})
	require.Error(t, err)

	var handlerErr lbevent.HandlerError
	require.ErrorAs(t, err, &handlerErr)
	assert.Equal(t, "failing", handlerErr.HandlerName)
	assert.Contains(t, buf.String(), "fan out")
}

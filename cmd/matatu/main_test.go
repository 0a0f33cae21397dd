package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matatu/internal/sim"
)

func env(vals map[string]string) func(string) string {
	return func(k string) string { return vals[k] }
}

func TestResolveSeed(t *testing.T) {
	clock := func() time.Time { return time.Unix(0, 12345) }
	tests := []struct {
		name    string
		flag    string
		env     map[string]string
		want    uint64
		wantErr bool
	}{
		{"flag wins", "7", map[string]string{seedEnv: "9"}, 7, false},
		{"env", "", map[string]string{seedEnv: "9"}, 9, false},
		{"clock", "", nil, 12345, false},
		{"bad flag", "x", nil, 0, true},
		{"bad env", "", map[string]string{seedEnv: "-1"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSeed(tt.flag, env(tt.env), clock)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := parseFlags([]string{"-ui", "headless", "-ticks", "10", "-mute"}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "headless", opts.ui)
	assert.Equal(t, 10, opts.ticks)
	assert.True(t, opts.mute)

	_, err = parseFlags([]string{"-ui", "vr"}, &stderr)
	assert.ErrorIs(t, err, errUsage)

	_, err = parseFlags([]string{"-ticks", "-3"}, &stderr)
	assert.ErrorIs(t, err, errUsage)
}

func runCapture(t *testing.T, args []string, vals map[string]string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	t.Cleanup(func() { setupLogging(os.Stderr, false) })
	code := run(context.Background(), args, &stdout, &stderr, env(vals))
	return code, stdout.String(), stderr.String()
}

func TestRunHeadlessTickCap(t *testing.T) {
	code, out, logs := runCapture(t, []string{"-ui", "headless", "-seed", "1", "-ticks", "30"}, nil)
	assert.Equal(t, 0, code)
	assert.Equal(t, "quit: score 30 after 30 ticks\n", out)
	assert.Contains(t, logs, "msg=starting")
	assert.Contains(t, logs, "seed=1")
	assert.NotContains(t, logs, "msg=spawn", "spawns are debug only")
}

func TestRunVerboseLogsSpawns(t *testing.T) {
	code, _, logs := runCapture(t, []string{"-ui", "headless", "-seed", "1", "-ticks", "70", "-v"}, nil)
	assert.Equal(t, 0, code)
	assert.Contains(t, logs, "level=debug")
	assert.Contains(t, logs, "event=vehicle-spawned")
	assert.Contains(t, logs, "tick=61")
}

func TestLogEventsFields(t *testing.T) {
	var buf bytes.Buffer
	setupLogging(&buf, false)
	t.Cleanup(func() { setupLogging(os.Stderr, false) })

	bus := sim.NewEventBus()
	logEvents(bus)
	bus.Emit(sim.Event{Type: sim.EventVehicleSpawned, Tick: 3, Lane: 2, Data: 9})
	assert.Empty(t, buf.String())

	bus.Emit(sim.Event{Type: sim.EventLaneChange, Tick: 4, Lane: 0, Data: 1})
	bus.Emit(sim.Event{Type: sim.EventCollision, Tick: 5, Lane: 0, Data: 4})
	out := buf.String()
	assert.Contains(t, out, `msg="lane change"`)
	assert.Contains(t, out, "from=1")
	assert.Contains(t, out, "level=warning")
	assert.Contains(t, out, "score=4")
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestRunHeadlessIsDeterministic(t *testing.T) {
	args := []string{"-ui", "headless", "-ticks", "20000"}
	_, a, _ := runCapture(t, args, map[string]string{seedEnv: "42"})
	_, b, _ := runCapture(t, args, map[string]string{seedEnv: "42"})
	assert.Equal(t, a, b)
}

func TestRunRejectsBadInput(t *testing.T) {
	code, _, logs := runCapture(t, []string{"-ui", "vr"}, nil)
	assert.Equal(t, 1, code)
	assert.Contains(t, logs, "unknown -ui")

	code, _, _ = runCapture(t, []string{"-ui", "headless"}, map[string]string{seedEnv: "abc"})
	assert.Equal(t, 1, code)
}

func TestRunCancelledContextQuits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	defer setupLogging(os.Stderr, false)
	code := run(ctx, []string{"-ui", "headless", "-seed", "3"}, &stdout, &stderr, env(nil))
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout.String(), "quit: score 0"))
}

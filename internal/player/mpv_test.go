package player

import (
	"net"
	"path/filepath"
	"testing"
)

// fakeIPC serves a scripted mpv IPC conversation: it drains the
// observe_property request, writes the given event lines and closes,
// which is how mpv ends the session on exit.
func fakeIPC(t *testing.T, socketPath string, lines []string) {
	t.Helper()
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("listen on fake IPC socket: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, 256)
		conn.Read(buf)
		for _, line := range lines {
			conn.Write([]byte(line + "\n"))
		}
	}()
}

func TestTrackPositionReturnsLastSample(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "socket")
	fakeIPC(t, socketPath, []string{
		`{"event":"property-change","name":"time-pos","data":12.5}`,
		`not json`,
		`{"event":"property-change","name":"time-pos","data":93.25}`,
		`{"event":"property-change","name":"time-pos","data":0}`,
	})

	var m MPV
	if got := m.trackPosition(socketPath); got != 93.25 {
		t.Errorf("trackPosition() = %v, want last positive sample 93.25", got)
	}
}

func TestTrackPositionIgnoresOtherProperties(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "socket")
	fakeIPC(t, socketPath, []string{
		`{"event":"property-change","name":"volume","data":55}`,
	})

	var m MPV
	if got := m.trackPosition(socketPath); got != 0 {
		t.Errorf("trackPosition() = %v, want 0 without time-pos samples", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{61.8, "1:01"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{7325, "2:02:05"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

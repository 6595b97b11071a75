// Package logging provides tests for session event logs and tail output.
package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/todolist-go/internal/events"
)

// TestNewSessionLog tests creating a new session log.
func TestNewSessionLog(t *testing.T) {
	t.Run("successful creation with valid paths", func(t *testing.T) {
		session, err := NewSessionLog(t.TempDir(), t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer session.Close()

		if session.Dir == "" || session.RunID == "" || session.LogPath == "" {
			t.Errorf("expected Dir, RunID and LogPath to be set, got %+v", session)
		}
		if _, err := os.Stat(session.LogPath); err != nil {
			t.Errorf("log file not created: %v", err)
		}
		if !strings.HasSuffix(session.LogPath, session.RunID+".jsonl") {
			t.Errorf("LogPath %q does not end with run id", session.LogPath)
		}
	})

	t.Run("empty base dir returns error", func(t *testing.T) {
		_, err := NewSessionLog("", t.TempDir())
		if err == nil {
			t.Fatal("expected error for empty base dir, got nil")
		}
		if !strings.Contains(err.Error(), "empty") {
			t.Errorf("expected empty dir error, got %v", err)
		}
	})

	t.Run("creates nested log directory", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "new-logs", "nested")
		session, err := NewSessionLog(base, t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer session.Close()

		if !strings.HasPrefix(session.Dir, base) {
			t.Errorf("Dir %q not under %q", session.Dir, base)
		}
	})
}

func TestSessionLogRecord(t *testing.T) {
	session, err := NewSessionLog(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionLog: %v", err)
	}

	target := events.NewTarget("my-element", nil)
	cc := events.NewCounterChanged(2)
	target.Dispatch(cc)
	if err := session.Record(cc); err != nil {
		t.Fatalf("Record: %v", err)
	}
	create := events.NewCreate()
	target.Dispatch(create)
	if err := session.Record(create); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := session.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records, err := ReadEvents(session.LogPath)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records: got %d, want 2", len(records))
	}

	first := records[0]
	if first.ID != cc.ID || first.Type != "counter-changed" || first.Target != "my-element" {
		t.Errorf("first record: %+v", first)
	}
	if !first.Bubbles || !first.Cancelable || !first.Composed {
		t.Errorf("first record flags: %+v", first)
	}
	var detail events.CounterChanged
	if err := json.Unmarshal(first.Detail, &detail); err != nil || detail.Count != 2 {
		t.Errorf("first record detail: %s (%v)", first.Detail, err)
	}

	second := records[1]
	if second.Type != "create" || string(second.Detail) != "null" {
		t.Errorf("second record: type=%q detail=%s", second.Type, second.Detail)
	}

	if err := session.Record(cc); err == nil {
		t.Error("expected error recording to a closed log")
	}
}

func TestSessionLogCloseNil(t *testing.T) {
	var session *SessionLog
	if err := session.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
	empty := &SessionLog{}
	if err := empty.Close(); err != nil {
		t.Errorf("Close without file: %v", err)
	}
}

func TestReadEventsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	content := `{"id":"a","type":"create","detail":null}` + "\n\n" + "not json\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadEvents(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "bad.jsonl:3") {
		t.Errorf("error should name the line, got %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records before the error: got %d, want 1", len(records))
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"todolist", "todolist"},
		{"my project", "my_project"},
		{"a//b??c", "a_b_c"},
		{"v1.2-beta_x", "v1.2-beta_x"},
		{"   ", "project"},
		{"***", "project"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := slugify(tt.input); got != tt.want {
				t.Errorf("slugify(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHashPath(t *testing.T) {
	a := hashPath("/a")
	if len(a) != 8 {
		t.Errorf("hash length: got %d, want 8", len(a))
	}
	if a != hashPath("/a") {
		t.Error("hash should be stable")
	}
	if a == hashPath("/b") {
		t.Error("different paths should hash differently")
	}
}

func TestFindLogDir(t *testing.T) {
	base := t.TempDir()
	work := t.TempDir()

	dir, err := FindLogDir(base, work)
	if err != nil {
		t.Fatalf("FindLogDir: %v", err)
	}
	if filepath.Dir(dir) != base {
		t.Errorf("dir %q not directly under %q", dir, base)
	}

	session, err := NewSessionLog(base, work)
	if err != nil {
		t.Fatalf("NewSessionLog: %v", err)
	}
	defer session.Close()
	if session.Dir != dir {
		t.Errorf("session dir %q differs from FindLogDir %q", session.Dir, dir)
	}

	if _, err := FindLogDir("", work); err == nil {
		t.Error("expected error for empty base dir")
	}
}

func TestFindSessions(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	files := map[string]time.Time{
		"20240101-000000-1.jsonl": now.Add(-2 * time.Hour),
		"20240101-010000-2.jsonl": now.Add(-1 * time.Hour),
		"20240101-020000-3.jsonl": now,
		"console.log":             now.Add(time.Hour),
	}
	for name, mod := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.jsonl"), 0755); err != nil {
		t.Fatal(err)
	}

	sessions, err := FindSessions(dir)
	if err != nil {
		t.Fatalf("FindSessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("sessions: got %d, want 3", len(sessions))
	}
	if sessions[0].RunID != "20240101-020000-3" || sessions[2].RunID != "20240101-000000-1" {
		t.Errorf("order: got %s .. %s", sessions[0].RunID, sessions[2].RunID)
	}

	latest, err := FindLatestLog(dir)
	if err != nil {
		t.Fatalf("FindLatestLog: %v", err)
	}
	if filepath.Base(latest) != "20240101-020000-3.jsonl" {
		t.Errorf("latest: got %q", latest)
	}

	t.Run("missing directory", func(t *testing.T) {
		sessions, err := FindSessions(filepath.Join(dir, "missing"))
		if err != nil || sessions != nil {
			t.Errorf("got (%v, %v), want (nil, nil)", sessions, err)
		}
		latest, err := FindLatestLog(filepath.Join(dir, "missing"))
		if err != nil || latest != "" {
			t.Errorf("got (%q, %v), want empty", latest, err)
		}
	})
}

func TestTailLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	var lines []string
	for i := 1; i <= 10; i++ {
		lines = append(lines, strings.Repeat("x", i))
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		n    int
		want string
	}{
		{"all lines", 0, content},
		{"last three", 3, strings.Join(lines[7:], "\n") + "\n"},
		{"more than available", 50, content},
		{"last one", 1, lines[9] + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := TailLog(context.Background(), &buf, path, tt.n, false); err != nil {
				t.Fatalf("TailLog: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}

	t.Run("follow stops with context", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
		defer cancel()
		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, path, 1, true); err != nil {
			t.Fatalf("TailLog: %v", err)
		}
		if buf.String() != lines[9]+"\n" {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		err := TailLog(context.Background(), &bytes.Buffer{}, filepath.Join(t.TempDir(), "nope"), 0, false)
		if err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestTailLogNoTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	if err := os.WriteFile(path, []byte("a\nb\nc"), 0644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := TailLog(context.Background(), &buf, path, 2, false); err != nil {
		t.Fatalf("TailLog: %v", err)
	}
	if buf.String() != "b\nc" {
		t.Errorf("got %q, want %q", buf.String(), "b\nc")
	}
}

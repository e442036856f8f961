package log_test

import (
	"bytes"
	"regexp"
	"testing"

	applog "aquastock/internal/log"
)

type buf struct{ bytes.Buffer }

func (*buf) Close() error { return nil }

func TestFileLogLineFormat(t *testing.T) {
	var b buf
	l := applog.NewFileLog(&b)
	l.Logf("Delete request received for Item IDs: %s", "3, 7")
	l.Logf("plain message")

	lines := bytes.Split(bytes.TrimSpace(b.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d", len(lines))
	}
	re := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] .+$`)
	for _, line := range lines {
		if !re.Match(line) {
			t.Fatalf("bad log line %q", line)
		}
	}
	if !bytes.Contains(lines[0], []byte("Item IDs: 3, 7")) {
		t.Fatalf("formatted args missing: %q", lines[0])
	}
}

func TestNilFileLogIsSafe(t *testing.T) {
	var l *applog.FileLog
	l.Logf("no sink")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
}

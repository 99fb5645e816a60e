package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"portfolio-site/internal/buildlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

const merged = `[2026-01-01 10:00:00 A] foo
[2026-01-01 10:00:01 A] bar
[2026-01-01 10:00:02 B] foo
[2026-01-01 10:00:03 B] bar
`

func TestSessionFilterAndExport(t *testing.T) {
	lines, err := buildlog.Parse(strings.NewReader(merged))
	require.NoError(t, err)

	var out syncBuffer
	s := newSession(&out, lines, 10*time.Millisecond)
	defer s.close()

	dir := t.TempDir()
	assert.True(t, s.handle("machine A"))
	assert.True(t, s.handle("search foo"))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `machine=A search="foo": 1 of 4 lines`)
	}, time.Second, 5*time.Millisecond)

	assert.True(t, s.handle("export "+dir))
	got, err := os.ReadFile(filepath.Join(dir, "build-logs-a-search.txt"))
	require.NoError(t, err)
	assert.Equal(t, "[2026-01-01 10:00:00 A] foo\n", string(got))

	assert.True(t, s.handle("machine C"))
	assert.True(t, s.handle("export "+dir))
	assert.Contains(t, out.String(), "warning: No logs to export.")

	assert.False(t, s.handle("quit"))
}

func TestSessionRunStopsOnQuit(t *testing.T) {
	lines, err := buildlog.Parse(strings.NewReader(merged))
	require.NoError(t, err)

	var out syncBuffer
	s := newSession(&out, lines, time.Millisecond)
	defer s.close()

	s.run(strings.NewReader("stats\nbogus\nquit\nshow\n"))
	assert.Contains(t, out.String(), "status=success events=4")
	assert.Contains(t, out.String(), `unknown command "bogus"`)
	assert.NotContains(t, out.String(), "10:00:00 A")
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []string
}

func (r *recorder) Changed(path string) { r.events = append(r.events, "changed "+filepath.Base(path)) }
func (r *recorder) Removed(path string) { r.events = append(r.events, "removed "+filepath.Base(path)) }

func (r *recorder) take() []string {
	events := r.events
	r.events = nil
	return events
}

func write(t *testing.T, path, content string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	write(t, filepath.Join(dir, "b.cae"), "x = 1;", base)
	write(t, filepath.Join(dir, "a.cae"), "y = 2;", base)
	write(t, filepath.Join(dir, "notes.txt"), "ignored", base)
	write(t, filepath.Join(dir, ".hidden", "c.cae"), "z = 3;", base)
	write(t, filepath.Join(dir, "sub", "d.cae"), "w = 4;", base)

	rec := &recorder{}
	w := New(dir, rec)

	require.NoError(t, w.Scan())
	assert.Equal(t, []string{"changed a.cae", "changed b.cae", "changed d.cae"}, rec.take())

	require.NoError(t, w.Scan())
	assert.Empty(t, rec.take())

	write(t, filepath.Join(dir, "a.cae"), "y = 3;", base.Add(time.Minute))
	require.NoError(t, os.Remove(filepath.Join(dir, "b.cae")))
	require.NoError(t, w.Scan())
	assert.Equal(t, []string{"changed a.cae", "removed b.cae"}, rec.take())
}

func TestScanMissingRoot(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), &recorder{})
	assert.Error(t, w.Scan())
}

func TestRunStopsWithContext(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.cae"), "x = 1;", time.Now())

	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, New(dir, rec, WithInterval(time.Millisecond)).Run(ctx))
	assert.Equal(t, []string{"changed a.cae"}, rec.take())
}

package scene

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tri.obj", triangleOBJ)
	cfgPath := writeFile(t, dir, "scene.toml", batchConfig("tri.obj", "out.bmp"))

	type outcome struct {
		res *Result
		err error
	}
	results := make(chan outcome, 64)

	w := &Watcher{
		Load:       func() (Config, error) { return Load(cfgPath) },
		ConfigPath: cfgPath,
		Debounce:   20 * time.Millisecond,
		OnRender: func(res *Result, err error) {
			select {
			case results <- outcome{res, err}:
			default:
			}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// an edit can produce more than one render; skip until one matches
	waitFor := func(match func(outcome) bool) outcome {
		t.Helper()
		timeout := time.After(5 * time.Second)
		for {
			select {
			case o := <-results:
				if match(o) {
					return o
				}
			case <-timeout:
				t.Fatal("timed out waiting for a render")
				return outcome{}
			}
		}
	}
	anyRender := func(outcome) bool { return true }

	first := waitFor(anyRender)
	require.NoError(t, first.err)
	assert.Equal(t, 1, first.res.Faces)

	// a second face in the mesh triggers a new render
	require.NoError(t, os.WriteFile(first.res.Mesh, []byte(triangleOBJ+"f 1 3 2\n"), 0o644))
	second := waitFor(func(o outcome) bool { return o.err == nil && o.res.Faces == 2 })
	assert.Equal(t, 1, second.res.Stats.FacesCulled)

	// a broken config is reported, not fatal
	require.NoError(t, os.WriteFile(cfgPath, []byte("fill = \"flood\"\n"), 0o644))
	third := waitFor(func(o outcome) bool { return o.err != nil })
	assert.ErrorIs(t, third.err, ErrInvalidConfig)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

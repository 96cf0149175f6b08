package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/docsite/pkg/loader"
	"github.com/oakwood-commons/docsite/pkg/site"
)

const validYAML = `title: first
description: d
themeConfig:
  nav:
    - text: Home
      link: /docs/
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fumadocs.config.yaml")
	writeFile(t, path, validYAML)

	w := New(path, loader.Options{})
	ev := w.Reload(context.Background())
	require.NoError(t, ev.Err)
	assert.Equal(t, "first", ev.Config.Title)
	assert.Nil(t, ev.Changes)
	assert.Same(t, ev.Config, w.Current())

	writeFile(t, path, "title: second\ndescription: d\nthemeConfig:\n  nav: []\n")
	ev = w.Reload(context.Background())
	require.NoError(t, ev.Err)
	assert.Equal(t, "second", w.Current().Title)
	require.NotEmpty(t, ev.Changes)
	assert.Equal(t, "title", ev.Changes[0].Field)

	writeFile(t, path, "title: ''\ndescription: d\n")
	ev = w.Reload(context.Background())
	require.Error(t, ev.Err)
	assert.NotEmpty(t, site.FieldErrors(ev.Err))
	assert.Equal(t, "second", ev.Config.Title, "last valid config is kept")
	assert.Equal(t, "second", w.Current().Title)
}

func TestReloadMissingFile(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "absent.yaml"), loader.Options{})
	ev := w.Reload(context.Background())
	require.ErrorIs(t, ev.Err, loader.ErrNotFound)
	assert.Nil(t, ev.Config)
	assert.Nil(t, w.Current())
}

func TestReloadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fumadocs.config.yaml")
	writeFile(t, path, validYAML)

	errTooShort := errors.New("need two entries")
	w := New(path, loader.Options{})
	w.Rules = []Rule{func(c *site.Config) error {
		if len(c.ThemeConfig.Nav) < 2 {
			return errTooShort
		}
		return nil
	}}
	ev := w.Reload(context.Background())
	require.ErrorIs(t, ev.Err, errTooShort)
	assert.Nil(t, w.Current())
}

func TestRunReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fumadocs.config.yaml")
	writeFile(t, path, validYAML)

	w := New(path, loader.Options{})
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(ev Event) { events <- ev })
	}()

	waitFor := func(match func(Event) bool) Event {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case ev := <-events:
				if match(ev) {
					return ev
				}
			case <-deadline:
				t.Fatal("timed out waiting for watch event")
				return Event{}
			}
		}
	}

	ev := waitFor(func(Event) bool { return true })
	require.NoError(t, ev.Err)
	assert.Equal(t, "first", ev.Config.Title)

	// Unrelated files in the same directory are ignored.
	writeFile(t, filepath.Join(dir, "other.txt"), "x")

	writeFile(t, path, "title: updated\ndescription: d\n")
	ev = waitFor(func(ev Event) bool { return ev.Err == nil && ev.Config.Title == "updated" })
	assert.NotEmpty(t, ev.Changes)

	writeFile(t, path, "title: [unterminated\n")
	ev = waitFor(func(ev Event) bool { return ev.Err != nil })
	assert.Equal(t, "updated", ev.Config.Title)
	assert.Equal(t, "updated", w.Current().Title)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "nope", "fumadocs.config.yaml"), loader.Options{})
	err := w.Run(context.Background(), func(Event) {})
	require.Error(t, err)
}

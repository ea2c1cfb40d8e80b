package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartWatcher(t *testing.T) {
	t.Run("requires roots", func(t *testing.T) {
		_, _, err := StartWatcher(context.Background(), WatchConfig{})
		assert.Error(t, err)
	})

	t.Run("initial scan emits existing documents", func(t *testing.T) {
		dir := t.TempDir()
		pdf := filepath.Join(dir, "card.pdf")
		require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		evCh, _, err := StartWatcher(ctx, WatchConfig{
			Roots:       []string{dir},
			InitialScan: true,
		})
		require.NoError(t, err)

		select {
		case got := <-evCh:
			assert.Equal(t, pdf, got)
		case <-time.After(2 * time.Second):
			t.Fatal("no initial scan event")
		}
	})

	t.Run("emits a written document", func(t *testing.T) {
		dir := t.TempDir()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		evCh, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}})
		require.NoError(t, err)

		pdf := filepath.Join(dir, "new.pdf")
		require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644))

		select {
		case got := <-evCh:
			assert.Equal(t, pdf, got)
		case <-time.After(2 * time.Second):
			t.Fatal("no create event")
		}
	})

	t.Run("debounced write burst coalesces and stays race free", func(t *testing.T) {
		dir := t.TempDir()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		evCh, _, err := StartWatcher(ctx, WatchConfig{
			Roots:    []string{dir},
			Debounce: time.Microsecond,
		})
		require.NoError(t, err)

		// Rewrite the same document rapidly so timer fires interleave with
		// incoming events. The race detector covers the pending bookkeeping.
		pdf := filepath.Join(dir, "doc.pdf")
		for i := 0; i < 500; i++ {
			require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644))
		}

		select {
		case got := <-evCh:
			assert.Equal(t, pdf, got)
		case <-time.After(2 * time.Second):
			t.Fatal("no debounced event")
		}
	})

	t.Run("ignores other extensions", func(t *testing.T) {
		dir := t.TempDir()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		evCh, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}})
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

		select {
		case got := <-evCh:
			t.Fatalf("unexpected event for %s", got)
		case <-time.After(300 * time.Millisecond):
		}
	})
}

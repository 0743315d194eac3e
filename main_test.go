package main

import (
	"context"
	"path/filepath"
	"testing"

	"codeberg.org/miketth/wise/pkg/config"
	"codeberg.org/miketth/wise/pkg/directivestore/json"
	"codeberg.org/miketth/wise/pkg/directivestore/memory"
	"codeberg.org/miketth/wise/pkg/directivestore/sqlite"
	"codeberg.org/miketth/wise/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		cfg  config.Config
		want interface{}
	}{
		{config.Config{Store: config.StoreMemory}, &memory.DirectiveStore{}},
		{config.Config{Store: config.StoreJSON, StorePath: filepath.Join(dir, "d.json")}, &json.DirectiveStore{}},
		{config.Config{Store: config.StoreSQLite, StorePath: filepath.Join(dir, "d.db")}, &sqlite.DirectiveStore{}},
	}

	for _, tt := range tests {
		ctx, cancel := context.WithCancel(context.Background())
		g, ctx := errgroup.WithContext(ctx)

		store, err := openStore(ctx, g, &tt.cfg, zap.NewNop().Sugar())
		require.NoError(t, err, tt.cfg.Store)
		assert.IsType(t, tt.want, store)
		require.NoError(t, store.SetLastDirective("com.apple.safari", geometry.Left))

		cancel()
		if err := g.Wait(); err != nil {
			assert.ErrorIs(t, err, context.Canceled)
		}
	}
}

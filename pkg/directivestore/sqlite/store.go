package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codeberg.org/miketth/wise/pkg/directivestore/sqlite/migrations"
	"codeberg.org/miketth/wise/pkg/geometry"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type DirectiveStore struct {
	db      *sql.DB
	querier *Queries
}

func NewDirectiveStore(filename string, log *zap.SugaredLogger) (*DirectiveStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := migrations.Migrate(db, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &DirectiveStore{
		db:      db,
		querier: New(db),
	}, nil
}

func (s *DirectiveStore) Close() error {
	return s.db.Close()
}

func (s *DirectiveStore) LastDirective(bundleID string) (geometry.Directive, bool, error) {
	raw, err := s.querier.GetLastDirective(context.Background(), bundleID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return geometry.FullScreen, false, nil
	case err != nil:
		return geometry.FullScreen, false, fmt.Errorf("sqlite select: %w", err)
	}

	directive, err := geometry.ParseDirective(raw)
	if err != nil {
		return geometry.FullScreen, false, fmt.Errorf("stored directive for %s: %w", bundleID, err)
	}

	return directive, true, nil
}

func (s *DirectiveStore) SetLastDirective(bundleID string, directive geometry.Directive) error {
	if err := s.querier.SetLastDirective(context.Background(), SetLastDirectiveParams{
		App:       bundleID,
		Directive: directive.String(),
	}); err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}

	return nil
}

package sqlite

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const getLastDirective = `
select directive from last_directives where app = ?
`

func (q *Queries) GetLastDirective(ctx context.Context, app string) (string, error) {
	row := q.db.QueryRowContext(ctx, getLastDirective, app)
	var directive string
	err := row.Scan(&directive)
	return directive, err
}

const setLastDirective = `
insert into last_directives (app, directive, updated_at)
values (?, ?, current_timestamp)
on conflict (app) do update set directive = excluded.directive, updated_at = excluded.updated_at
`

type SetLastDirectiveParams struct {
	App       string
	Directive string
}

func (q *Queries) SetLastDirective(ctx context.Context, arg SetLastDirectiveParams) error {
	_, err := q.db.ExecContext(ctx, setLastDirective, arg.App, arg.Directive)
	return err
}

const dumpTables = `
select sql from sqlite_master where type = 'table' and name not like 'sqlite_%' order by name
`

func (q *Queries) DumpTables(ctx context.Context) ([]*string, error) {
	return q.dumpStatements(ctx, dumpTables)
}

const dumpRest = `
select sql from sqlite_master where type in ('index', 'trigger', 'view') order by name
`

func (q *Queries) DumpRest(ctx context.Context) ([]*string, error) {
	return q.dumpStatements(ctx, dumpRest)
}

func (q *Queries) dumpStatements(ctx context.Context, query string) ([]*string, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*string
	for rows.Next() {
		var statement *string
		if err := rows.Scan(&statement); err != nil {
			return nil, err
		}
		items = append(items, statement)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

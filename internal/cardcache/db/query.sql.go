package db

import (
	"context"
)

const countCards = `-- name: CountCards :one
select count(*) from card
`

func (q *Queries) CountCards(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countCards)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteCardsBefore = `-- name: DeleteCardsBefore :execrows
delete from card where fetched_at < ?
`

func (q *Queries) DeleteCardsBefore(ctx context.Context, fetchedAt int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteCardsBefore, fetchedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getCard = `-- name: GetCard :one
select "key", name, detail, fetched_at from card where "key" = ?
`

func (q *Queries) GetCard(ctx context.Context, key string) (Card, error) {
	row := q.db.QueryRowContext(ctx, getCard, key)
	var i Card
	err := row.Scan(
		&i.Key,
		&i.Name,
		&i.Detail,
		&i.FetchedAt,
	)
	return i, err
}

const putCard = `-- name: PutCard :exec
insert into card ("key", name, detail, fetched_at) values (?, ?, ?, ?)
on conflict ("key") do update set
    name = excluded.name,
    detail = excluded.detail,
    fetched_at = excluded.fetched_at
`

type PutCardParams struct {
	Key       string
	Name      string
	Detail    string
	FetchedAt int64
}

func (q *Queries) PutCard(ctx context.Context, arg PutCardParams) error {
	_, err := q.db.ExecContext(ctx, putCard,
		arg.Key,
		arg.Name,
		arg.Detail,
		arg.FetchedAt,
	)
	return err
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/spiread/ent/schema"
	"github.com/abhisek/spiread/internal/games"
)

var progressColumns = schema.Columns(schema.GameProgress{})

type progressRepo struct {
	drv *entsql.Driver
}

func (p *progressRepo) Get(ctx context.Context, game games.ID) (Progress, error) {
	prog, found, err := getProgress(ctx, p.drv, game)
	if err != nil {
		return Progress{}, err
	}
	if !found {
		return Progress{Game: game, LastLevel: 1}, nil
	}
	return prog, nil
}

func (p *progressRepo) All(ctx context.Context) ([]Progress, error) {
	b := builder()
	q, args := b.Select(progressColumns...).
		From(b.Table(progressTable)).
		OrderBy("game").
		Query()
	var rows entsql.Rows
	if err := p.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []Progress
	for rows.Next() {
		prog, err := scanProgress(&rows)
		if err != nil {
			return nil, err
		}
		out = append(out, prog)
	}
	return out, rows.Err()
}

func (p *progressRepo) Reset(ctx context.Context, game games.ID) error {
	tx, err := p.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for _, table := range []string{runsTable, progressTable} {
		del := builder().Delete(table)
		if game != "" {
			del.Where(entsql.EQ("game", string(game)))
		}
		q, args := del.Query()
		if err := tx.Exec(ctx, q, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func getProgress(ctx context.Context, conn dialect.ExecQuerier, game games.ID) (Progress, bool, error) {
	b := builder()
	q, args := b.Select(progressColumns...).
		From(b.Table(progressTable)).
		Where(entsql.EQ("game", string(game))).
		Query()
	var rows entsql.Rows
	if err := conn.Query(ctx, q, args, &rows); err != nil {
		return Progress{}, false, fmt.Errorf("get progress: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return Progress{}, false, rows.Err()
	}
	prog, err := scanProgress(&rows)
	return prog, err == nil, err
}

func scanProgress(rows *entsql.Rows) (Progress, error) {
	var (
		prog      Progress
		game      string
		best      sql.NullInt64
		updatedAt int64
	)
	err := rows.Scan(&game, &prog.LastLevel, &best, &prog.TotalRuns, &prog.ValidRuns, &prog.TotalTrials, &updatedAt)
	if err != nil {
		return prog, fmt.Errorf("scan progress: %w", err)
	}
	prog.Game = games.ID(game)
	prog.UpdatedAt = time.UnixMilli(updatedAt)
	if best.Valid {
		v := int(best.Int64)
		prog.BestScore = &v
	}
	return prog, nil
}

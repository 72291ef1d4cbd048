package repository

import (
	"context"
	"errors"
	"fmt"

	"newsadmin/internal/apperr"
	"newsadmin/internal/logger"
	"newsadmin/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// NewsPostRepo — доступ к таблице news_posts.
type NewsPostRepo interface {
	Create(ctx context.Context, title, description string) (*models.NewsPost, error)
	GetByID(ctx context.Context, id int) (*models.NewsPost, error)
	// GetByIDs — одна групповая выборка. Отсутствующих id в карте просто нет.
	GetByIDs(ctx context.Context, ids []int) (map[int]*models.NewsPost, error)
	ListPaginated(ctx context.Context, limit, offset int) ([]*models.NewsPost, int, error)
	Update(ctx context.Context, id int, title, description *string) (*models.NewsPost, error)
	Delete(ctx context.Context, id int) error
}

type newsPostRepo struct {
	db *pgxpool.Pool
}

func NewNewsPostRepository(db *pgxpool.Pool) NewsPostRepo {
	return &newsPostRepo{db: db}
}

const newsPostColumns = `id, title, description, created_at, updated_at`

func (r *newsPostRepo) Create(ctx context.Context, title, description string) (*models.NewsPost, error) {
	const op = "repository.newsPost.Create"

	const q = `
		INSERT INTO news_posts (title, description)
		VALUES ($1, $2)
		RETURNING ` + newsPostColumns

	p, err := scanNewsPost(r.db.QueryRow(ctx, q, title, description))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r *newsPostRepo) GetByID(ctx context.Context, id int) (*models.NewsPost, error) {
	const op = "repository.newsPost.GetByID"

	q := `SELECT ` + newsPostColumns + ` FROM news_posts WHERE id = $1`
	p, err := scanNewsPost(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r *newsPostRepo) GetByIDs(ctx context.Context, ids []int) (map[int]*models.NewsPost, error) {
	const op = "repository.newsPost.GetByIDs"

	out := make(map[int]*models.NewsPost, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	logger.WithCtx(ctx).Debug("Групповая выборка новостей (repo)", zap.Ints("ids", ids))

	q := `SELECT ` + newsPostColumns + ` FROM news_posts WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanNewsPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

// ListPaginated возвращает страницу (created_at DESC, id DESC) и общее число записей.
// Оба запроса уходят одним батчем.
func (r *newsPostRepo) ListPaginated(ctx context.Context, limit, offset int) ([]*models.NewsPost, int, error) {
	const op = "repository.newsPost.ListPaginated"

	batch := &pgx.Batch{}
	batch.Queue(`SELECT COUNT(*) FROM news_posts`)
	batch.Queue(`SELECT `+newsPostColumns+` FROM news_posts ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	var total int
	if err := br.QueryRow().Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", op, err)
	}

	rows, err := br.Query()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	list := make([]*models.NewsPost, 0, limit)
	for rows.Next() {
		p, err := scanNewsPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: scan row: %w", op, err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: rows: %w", op, err)
	}
	return list, total, nil
}

func (r *newsPostRepo) Update(ctx context.Context, id int, title, description *string) (*models.NewsPost, error) {
	const op = "repository.newsPost.Update"

	const q = `
		UPDATE news_posts
		SET title       = COALESCE($1, title),
		    description = COALESCE($2, description),
		    updated_at  = GREATEST(NOW(), created_at)
		WHERE id = $3
		RETURNING ` + newsPostColumns

	p, err := scanNewsPost(r.db.QueryRow(ctx, q, title, description, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r *newsPostRepo) Delete(ctx context.Context, id int) error {
	const op = "repository.newsPost.Delete"

	tag, err := r.db.Exec(ctx, `DELETE FROM news_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}

// scanNewsPost — единая точка чтения строки. Здесь же вычисляется виртуальное поле type.
func scanNewsPost(row pgx.Row) (*models.NewsPost, error) {
	var p models.NewsPost
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	p.Type = models.DeriveType(&p)
	return &p, nil
}

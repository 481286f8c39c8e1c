package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vovarama1992/baluplix/internal/models"
	"github.com/Vovarama1992/baluplix/internal/ports"
)

const videoColumns = `id, title, description, storage_key, mime_type, size_bytes,
	published, poster, duration_seconds, created_at, updated_at`

type PostgresVideoRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresVideoRepo(pool *pgxpool.Pool) ports.VideoRepository {
	return &PostgresVideoRepo{pool: pool}
}

func (r *PostgresVideoRepo) Insert(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (id, title, description, storage_key, mime_type,
			size_bytes, published, poster, duration_seconds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	row := r.pool.QueryRow(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.StorageKey,
		video.MimeType,
		video.SizeBytes,
		video.Published,
		video.Poster,
		video.DurationSeconds,
	)
	if err := row.Scan(&video.CreatedAt, &video.UpdatedAt); err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	return nil
}

func (r *PostgresVideoRepo) GetByID(ctx context.Context, id string) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	video, err := scanVideo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get video by id: %w", err)
	}
	return video, nil
}

func (r *PostgresVideoRepo) List(ctx context.Context, publishedOnly bool) ([]models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos`
	if publishedOnly {
		query += ` WHERE published`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	videos := make([]models.Video, 0)
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, *video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

func (r *PostgresVideoRepo) SetPublished(ctx context.Context, id string, published bool) (*models.Video, error) {
	query := `
		UPDATE videos
		SET published = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + videoColumns

	video, err := scanVideo(r.pool.QueryRow(ctx, query, id, published))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("set published: %w", err)
	}
	return video, nil
}

func (r *PostgresVideoRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete video: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanVideo(row pgx.Row) (*models.Video, error) {
	var v models.Video
	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&v.StorageKey,
		&v.MimeType,
		&v.SizeBytes,
		&v.Published,
		&v.Poster,
		&v.DurationSeconds,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/blogapi/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

type PostRepository struct {
	db *Connection
}

func NewPostRepository(db *Connection) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

const postColumns = `id, title, slug, content, tags, photo_key, owner_id, created_at, updated_at`

func scanPost(row pgx.Row) (model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Content, &post.Tags,
		&post.PhotoKey, &post.OwnerID, &post.CreatedAt, &post.UpdatedAt,
	)
	return post, err
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

func (r *PostRepository) List(ctx context.Context) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	query := `INSERT INTO posts (id, title, slug, content, tags, owner_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + postColumns

	savedPost, err := scanPost(r.db.QueryRow(ctx, query,
		post.ID, post.Title, post.Slug, post.Content, post.Tags, post.OwnerID,
		post.CreatedAt, post.UpdatedAt,
	))
	if err != nil {
		if isDuplicate(err) {
			return model.Post{}, model.ErrDuplicate
		}
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	return savedPost, nil
}

func (r *PostRepository) Update(ctx context.Context, id uuid.UUID, update model.PostUpdate) (model.Post, error) {
	query := `UPDATE posts SET
				title = COALESCE($2, title),
				slug = COALESCE($3, slug),
				content = COALESCE($4, content),
				tags = COALESCE($5, tags),
				photo_key = COALESCE($6, photo_key),
				updated_at = now()
			  WHERE id = $1
			  RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRow(ctx, query, id, update.Title, update.Slug, update.Content, update.Tags, update.PhotoKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		if isDuplicate(err) {
			return model.Post{}, model.ErrDuplicate
		}
		return model.Post{}, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM posts WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

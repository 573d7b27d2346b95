package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/blogapi/internal/model"
)

var _ model.CommentStore = (*CommentRepository)(nil)

type CommentRepository struct {
	db *Connection
}

func NewCommentRepository(db *Connection) *CommentRepository {
	return &CommentRepository{
		db: db,
	}
}

const commentColumns = `id, content, post_id, owner_id, created_at, updated_at`

func scanComment(row pgx.Row) (model.Comment, error) {
	var comment model.Comment
	err := row.Scan(
		&comment.ID, &comment.Content, &comment.PostID, &comment.OwnerID,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	return comment, err
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, model.ErrNotFound
		}
		return model.Comment{}, fmt.Errorf("failed to get comment by id: %w", err)
	}

	return comment, nil
}

func (r *CommentRepository) GetDetailByID(ctx context.Context, id uuid.UUID) (model.CommentDetail, error) {
	query := `SELECT c.id, c.content, c.post_id, c.owner_id, c.created_at, c.updated_at, p.title, u.name
			  FROM comments c
			  JOIN posts p ON p.id = c.post_id
			  JOIN users u ON u.id = c.owner_id
			  WHERE c.id = $1`

	var detail model.CommentDetail
	err := r.db.QueryRow(ctx, query, id).Scan(
		&detail.ID, &detail.Content, &detail.PostID, &detail.OwnerID,
		&detail.CreatedAt, &detail.UpdatedAt, &detail.PostTitle, &detail.OwnerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CommentDetail{}, model.ErrNotFound
		}
		return model.CommentDetail{}, fmt.Errorf("failed to get comment detail: %w", err)
	}

	return detail, nil
}

func (r *CommentRepository) List(ctx context.Context) ([]model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY created_at DESC`

	return r.queryComments(ctx, query)
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at DESC`

	return r.queryComments(ctx, query, postID)
}

func (r *CommentRepository) queryComments(ctx context.Context, query string, args ...any) ([]model.Comment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

func (r *CommentRepository) Create(ctx context.Context, comment model.Comment) (model.Comment, error) {
	query := `INSERT INTO comments (id, content, post_id, owner_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + commentColumns

	savedComment, err := scanComment(r.db.QueryRow(ctx, query,
		comment.ID, comment.Content, comment.PostID, comment.OwnerID,
		comment.CreatedAt, comment.UpdatedAt,
	))
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}

	return savedComment, nil
}

func (r *CommentRepository) Update(ctx context.Context, id uuid.UUID, update model.CommentUpdate) (model.Comment, error) {
	query := `UPDATE comments SET
				content = COALESCE($2, content),
				updated_at = now()
			  WHERE id = $1
			  RETURNING ` + commentColumns

	comment, err := scanComment(r.db.QueryRow(ctx, query, id, update.Content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, model.ErrNotFound
		}
		return model.Comment{}, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM comments WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

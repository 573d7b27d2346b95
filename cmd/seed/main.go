// Command seed loads the JSON fixtures under data/ into the database, or
// wipes all rows. It is a development tool, not part of the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/dtroode/blogapi/internal/auth"
	"github.com/dtroode/blogapi/internal/config"
	"github.com/dtroode/blogapi/internal/model"
	"github.com/dtroode/blogapi/internal/repository/postgres"
)

type userFixture struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
}

type postFixture struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Tags    []string  `json:"tags"`
	OwnerID uuid.UUID `json:"owner"`
}

type commentFixture struct {
	ID      uuid.UUID `json:"id"`
	Content string    `json:"content"`
	PostID  uuid.UUID `json:"post"`
	OwnerID uuid.UUID `json:"owner"`
}

func main() {
	importData := flag.Bool("i", false, "import fixtures")
	deleteData := flag.Bool("d", false, "delete all data")
	dataDir := flag.String("data", "data", "fixture directory")
	flag.Parse()

	if *importData == *deleteData {
		log.Fatal("pass exactly one of -i or -d")
	}

	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer db.Close()

	if *deleteData {
		wipe(ctx, db)
		log.Println("data destroyed")
		return
	}

	seed(ctx, db, *dataDir)
	log.Println("data imported")
}

func wipe(ctx context.Context, db *postgres.Connection) {
	// Users cascade to posts and comments.
	if _, err := db.Pool.Exec(ctx, `DELETE FROM users`); err != nil {
		log.Fatalf("failed to delete users: %v", err)
	}
}

func seed(ctx context.Context, db *postgres.Connection, dataDir string) {
	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)

	var users []userFixture
	readFixture(filepath.Join(dataDir, "users.json"), &users)
	now := time.Now()
	for _, u := range users {
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			log.Fatalf("failed to hash password for %s: %v", u.Username, err)
		}
		if _, err := userRepo.Create(ctx, model.User{
			ID:           u.ID,
			Username:     u.Username,
			Name:         u.Name,
			Role:         model.Role(u.Role),
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			log.Fatalf("failed to create user %s: %v", u.Username, err)
		}
	}

	var posts []postFixture
	readFixture(filepath.Join(dataDir, "posts.json"), &posts)
	for _, p := range posts {
		if _, err := postRepo.Create(ctx, model.Post{
			ID:        p.ID,
			Title:     p.Title,
			Slug:      slug.Make(p.Title),
			Content:   p.Content,
			Tags:      p.Tags,
			OwnerID:   p.OwnerID,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			log.Fatalf("failed to create post %q: %v", p.Title, err)
		}
	}

	var comments []commentFixture
	readFixture(filepath.Join(dataDir, "comments.json"), &comments)
	for _, c := range comments {
		if _, err := commentRepo.Create(ctx, model.Comment{
			ID:        c.ID,
			Content:   c.Content,
			PostID:    c.PostID,
			OwnerID:   c.OwnerID,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			log.Fatalf("failed to create comment %s: %v", c.ID, err)
		}
	}
}

func readFixture(path string, v any) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read fixture %s: %v", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Fatalf("failed to parse fixture %s: %v", path, err)
	}
}

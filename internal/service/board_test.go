package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"lol-tracker/internal/database"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type boardFixture struct {
	svc   *BoardService
	alice domain.Principal
	bob   domain.Principal
}

func newBoardFixture(t *testing.T) boardFixture {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "boards.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := repository.NewUserRepository(db, zerolog.Nop())
	principals := make([]domain.Principal, 0, 2)
	for _, name := range []string{"alice", "bob"} {
		u := &domain.User{Username: name, PasswordHash: "h", Email: name + "@example.com"}
		if err := users.Create(context.Background(), u); err != nil {
			t.Fatal(err)
		}
		principals = append(principals, domain.Principal{UserID: u.ID, Username: u.Username, Role: u.Role})
	}

	return boardFixture{
		svc:   NewBoardService(repository.NewBoardRepository(db, zerolog.Nop()), NewValidator(), zerolog.Nop()),
		alice: principals[0],
		bob:   principals[1],
	}
}

func TestBoardCreateValidation(t *testing.T) {
	f := newBoardFixture(t)
	tests := []struct {
		name      string
		req       BoardRequest
		wantField string
	}{
		{"blank title", BoardRequest{Title: "   ", Content: "body"}, "title"},
		{"long title", BoardRequest{Title: strings.Repeat("a", 101), Content: "body"}, "title"},
		{"blank content", BoardRequest{Title: "hello", Content: "\n"}, "content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), f.alice, tt.req)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.wantField {
				t.Errorf("error = %v, want validation error on %s", err, tt.wantField)
			}
		})
	}
}

func TestBoardLifecycle(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, f.alice, BoardRequest{Title: " First ", Content: "hello"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if b.Title != "First" || b.AuthorName != "alice" {
		t.Errorf("board = %+v", b)
	}
	if _, err := f.svc.Create(ctx, f.bob, BoardRequest{Title: "First", Content: "again"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate title error = %v, want ErrConflict", err)
	}

	got, err := f.svc.Get(ctx, b.ID)
	if err != nil || got.ViewCount != 1 {
		t.Errorf("Get() = %+v, %v", got, err)
	}

	if _, err := f.svc.Update(ctx, f.bob, b.ID, BoardRequest{Title: "Hijack", Content: "x"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-author update error = %v, want ErrForbidden", err)
	}
	updated, err := f.svc.Update(ctx, f.alice, b.ID, BoardRequest{Title: "First", Content: "edited"})
	if err != nil || updated.Content != "edited" {
		t.Errorf("author update = %+v, %v", updated, err)
	}

	if err := f.svc.Delete(ctx, f.bob, b.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-author delete error = %v", err)
	}
	if err := f.svc.Delete(ctx, f.alice, b.ID); err != nil {
		t.Errorf("author delete error = %v", err)
	}
	if _, err := f.svc.Get(ctx, b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("deleted board error = %v", err)
	}
}

func TestBoardListValidation(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		page   int
		size   int
		sortBy string
		field  string
	}{
		{"negative page", -1, 10, "", "page"},
		{"zero size", 0, 0, "", "size"},
		{"oversized", 0, 101, "", "size"},
		{"unknown sort", 0, 10, "author", "sortBy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.List(ctx, tt.page, tt.size, tt.sortBy)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("error = %v, want validation error on %s", err, tt.field)
			}
		})
	}

	page, err := f.svc.List(ctx, 0, 10, "")
	if err != nil || page.Total != 0 || page.Items == nil {
		t.Errorf("empty list = %+v, %v", page, err)
	}
	if _, err := f.svc.Search(ctx, " "); err == nil {
		t.Error("blank search keyword should be rejected")
	}
}

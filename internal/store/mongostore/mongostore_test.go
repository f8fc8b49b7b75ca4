package mongostore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/platform/logger"
	"github.com/devconnect/devconnect-backend/internal/platform/mongodb"
	"github.com/devconnect/devconnect-backend/internal/store"
)

// testStore connects to the deployment named by TEST_MONGO_URI and hands back
// a Store rooted in a fresh throwaway database. Without the variable the test
// is skipped, so the suite stays runnable on machines with no MongoDB.
func testStore(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set; skipping MongoDB integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, uri)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	dbName := fmt.Sprintf("devconnect_test_%s", uuid.NewString()[:8])
	db := client.Database(dbName)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return New(db, log)
}

func TestPostStoreIntegration(t *testing.T) {
	st := testStore(t)
	posts := st.Posts()
	ctx := context.Background()

	if _, err := posts.Load(ctx, uuid.NewString()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Load missing: want ErrNotFound, got %v", err)
	}

	p := &domain.Post{
		ID:         uuid.NewString(),
		Text:       "integration post",
		AuthorID:   "u1",
		AuthorName: "Alice",
		Likes:      []domain.Like{},
		Comments:   []domain.Comment{},
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := posts.Save(ctx, p); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if p.Version != 1 {
		t.Fatalf("insert should bump version to 1, got %d", p.Version)
	}

	got, err := posts.Load(ctx, p.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Text != p.Text || got.AuthorName != "Alice" || got.Version != 1 {
		t.Fatalf("Load returned %+v", got)
	}

	// Replay the insert: the _id already exists, so it must surface a conflict.
	dup := &domain.Post{ID: p.ID, Text: "dup", AuthorID: "u1", CreatedAt: p.CreatedAt}
	if err := posts.Save(ctx, dup); !errors.Is(err, store.ErrVersionConflict) {
		t.Fatalf("duplicate insert: want ErrVersionConflict, got %v", err)
	}

	// Concurrent edit: the writer holding the stale version loses.
	a, _ := posts.Load(ctx, p.ID)
	b, _ := posts.Load(ctx, p.ID)
	a.Likes = append(a.Likes, domain.Like{UserID: "u2"})
	if err := posts.Save(ctx, a); err != nil {
		t.Fatalf("first update: %v", err)
	}
	b.Likes = append(b.Likes, domain.Like{UserID: "u3"})
	if err := posts.Save(ctx, b); !errors.Is(err, store.ErrVersionConflict) {
		t.Fatalf("stale update: want ErrVersionConflict, got %v", err)
	}

	if err := posts.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := posts.Delete(ctx, p.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Delete missing: want ErrNotFound, got %v", err)
	}
}

func TestPostStoreIntegrationListAndDeleteByAuthor(t *testing.T) {
	st := testStore(t)
	posts := st.Posts()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	ids := make([]string, 3)
	for i := range ids {
		ids[i] = uuid.NewString()
		author := "u1"
		if i == 1 {
			author = "u2"
		}
		p := &domain.Post{
			ID:        ids[i],
			Text:      fmt.Sprintf("post %d", i),
			AuthorID:  author,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := posts.Save(ctx, p); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	all, err := posts.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("LoadAll returned %d posts", len(all))
	}
	for i, want := range []string{ids[2], ids[1], ids[0]} {
		if all[i].ID != want {
			t.Fatalf("LoadAll order: got %s at %d, want %s", all[i].ID, i, want)
		}
	}

	if err := posts.DeleteByAuthor(ctx, "u1"); err != nil {
		t.Fatalf("DeleteByAuthor: %v", err)
	}
	all, _ = posts.LoadAll(ctx)
	if len(all) != 1 || all[0].AuthorID != "u2" {
		t.Fatalf("DeleteByAuthor left %+v", all)
	}
}

func TestProfileStoreIntegration(t *testing.T) {
	st := testStore(t)
	profiles := st.Profiles()
	ctx := context.Background()

	p := &domain.Profile{
		UserID:    uuid.NewString(),
		Status:    "Developer",
		Skills:    []string{"go", "mongo"},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := profiles.Save(ctx, p); err != nil {
		t.Fatalf("insert: %v", err)
	}

	p.Status = "Lead"
	p.Experience = append(p.Experience, domain.Experience{
		ID:      uuid.NewString(),
		Title:   "Engineer",
		Company: "Acme",
		From:    time.Now().UTC().Truncate(time.Millisecond),
	})
	if err := profiles.Save(ctx, p); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := profiles.Load(ctx, p.UserID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Status != "Lead" || len(got.Experience) != 1 || got.Version != 2 {
		t.Fatalf("Load returned %+v", got)
	}

	stale := &domain.Profile{UserID: p.UserID, Status: "Stale", Version: 1}
	if err := profiles.Save(ctx, stale); !errors.Is(err, store.ErrVersionConflict) {
		t.Fatalf("stale update: want ErrVersionConflict, got %v", err)
	}

	if err := profiles.Delete(ctx, p.UserID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := profiles.Load(ctx, p.UserID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Load deleted: want ErrNotFound, got %v", err)
	}
}

func TestUserStoreIntegration(t *testing.T) {
	st := testStore(t)
	users := st.Users()
	ctx := context.Background()

	u := &domain.User{
		ID:        uuid.NewString(),
		Name:      "Alice",
		Email:     fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		Avatar:    "https://www.gravatar.com/avatar/x",
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := users.Save(ctx, u); err != nil {
		t.Fatalf("Save: %v", err)
	}

	byEmail, err := users.LoadByEmail(ctx, u.Email)
	if err != nil {
		t.Fatalf("LoadByEmail: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Fatalf("LoadByEmail returned %+v", byEmail)
	}

	owners, err := users.LoadDisplay(ctx, []string{u.ID, uuid.NewString()})
	if err != nil {
		t.Fatalf("LoadDisplay: %v", err)
	}
	if len(owners) != 1 || owners[u.ID].Name != "Alice" {
		t.Fatalf("LoadDisplay returned %+v", owners)
	}

	if err := users.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := users.Load(ctx, u.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Load deleted: want ErrNotFound, got %v", err)
	}
}

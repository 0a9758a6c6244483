package contact

import (
	"context"
	"errors"
	"testing"

	"portfolio/internal/domain"
	portfolioSvc "portfolio/internal/domain/services/portfolio"
)

func TestCreateCategory(t *testing.T) {
	categories := newMemCategories()
	svc := NewService(categories, &memMessages{}, testLogger())

	got, err := svc.CreateCategory(context.Background(), &portfolioSvc.CategoryRequest{
		Name:              "  Events ",
		NotificationEmail: "events@test.dev",
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if got.Name != "Events" || got.ID == "" {
		t.Errorf("category = %+v", got)
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	tests := []struct {
		name string
		req  portfolioSvc.CategoryRequest
	}{
		{"empty name", portfolioSvc.CategoryRequest{Name: ""}},
		{"blank name", portfolioSvc.CategoryRequest{Name: "   "}},
		{"bad email", portfolioSvc.CategoryRequest{Name: "Events", NotificationEmail: "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMemCategories(), &memMessages{}, testLogger())
			_, err := svc.CreateCategory(context.Background(), &tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want validation", err)
			}
		})
	}
}

func TestCreateCategoryConflictPassesThrough(t *testing.T) {
	categories := newMemCategories()
	svc := NewService(categories, &memMessages{}, testLogger())
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, &portfolioSvc.CategoryRequest{Name: "General"}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.CreateCategory(ctx, &portfolioSvc.CategoryRequest{Name: "general"})

	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) || conflict.ResourceID != "c-general" {
		t.Errorf("err = %v", err)
	}
}

func TestDeleteMessage(t *testing.T) {
	messages := &memMessages{}
	svc := NewService(newMemCategories(), messages, testLogger())
	ctx := context.Background()
	f := newRelayFixture()
	f.messages = messages
	if _, err := f.relay("").Send(ctx, validRequest()); err != nil {
		t.Fatal(err)
	}

	list, _ := svc.ListMessages(ctx)
	if len(list) != 1 {
		t.Fatalf("messages = %d", len(list))
	}
	id := list[0].ID
	if err := svc.DeleteMessage(ctx, id); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteMessage(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

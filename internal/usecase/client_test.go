package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/test"
	"github.com/dokonbot/dokonbot/internal/usecase"
)

func TestClientCreateRejectsEmptyName(t *testing.T) {
	uc := usecase.NewClientUseCase(test.NewClientRepositoryStub(), test.NewOrderRepositoryStub())

	if _, err := uc.Create(context.Background(), "", "+998901112233", ""); !errors.Is(err, domainErrors.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestClientCreateAndLookup(t *testing.T) {
	uc := usecase.NewClientUseCase(test.NewClientRepositoryStub(), test.NewOrderRepositoryStub())
	ctx := context.Background()

	created, err := uc.Create(ctx, "Aziz", "+998901112233", "Chilonzor 5")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if !created.Active {
		t.Fatal("expected new client to be active")
	}

	loaded, err := uc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("lookup client: %v", err)
	}
	if loaded.Name != "Aziz" {
		t.Fatalf("unexpected name %q", loaded.Name)
	}

	if _, err := uc.GetByID(ctx, "CLI-999"); !errors.Is(err, domainErrors.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestProductCreateRejectsEmptyName(t *testing.T) {
	uc := usecase.NewProductUseCase(test.NewProductRepositoryStub())

	if _, err := uc.Create(context.Background(), "", 5000, 0); !errors.Is(err, domainErrors.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/wground/wground-api/internal/domain/announcement"
	announcementmock "github.com/wground/wground-api/internal/mocks/domain/announcement"
)

func TestAnnouncementService_Delete_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := announcementmock.NewRepository(t)
	service := NewAnnouncementService(repo, &sequenceIDGenerator{}, nil)

	repo.
		On("GetPasswordByID", mock.Anything, "ann-1").
		Return("secret", true, nil).
		Once()
	repo.
		On("DeleteByID", mock.Anything, "ann-1").
		Return(nil).
		Once()

	if err := service.Delete(ctx, "ann-1", "secret"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestAnnouncementService_Delete_MismatchSkipsDeleteUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := announcementmock.NewRepository(t)
	service := NewAnnouncementService(repo, &sequenceIDGenerator{}, nil)

	repo.
		On("GetPasswordByID", mock.Anything, "ann-1").
		Return("secret", true, nil).
		Once()

	err := service.Delete(ctx, "ann-1", "wrong")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	repo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestAnnouncementService_List_RepoErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := announcementmock.NewRepository(t)
	service := NewAnnouncementService(repo, &sequenceIDGenerator{}, nil)

	repo.
		On("List", mock.Anything, announcement.Filters{}).
		Return(nil, errors.New("connection refused")).
		Once()

	if _, err := service.List(ctx, announcement.Filters{}); err == nil {
		t.Fatal("expected repository error to propagate")
	}
}

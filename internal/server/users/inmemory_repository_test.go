package users

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(email string) *models.User {
	return &models.User{
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Name:         "Al",
	}
}

func TestInMemoryRepository_CreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, testUser("a@b.com"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", byID.Email)
}

func TestInMemoryRepository_EmailUniquenessIsCaseInsensitive(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, testUser("a@b.com"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, testUser("A@B.COM"))
	require.True(t, errors.Is(err, common.ErrAlreadyExists))

	// lookup folds case too
	found, err := repo.GetByEmail(ctx, "A@B.Com")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", found.Email)
}

func TestInMemoryRepository_GetMissesReturnNotFound(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "missing@b.com")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, err = repo.GetByID(ctx, "missing-id")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestInMemoryRepository_CreateRejectsInvalidRecords(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	u := testUser("a@b.com")
	u.Name = ""
	_, err := repo.Create(ctx, u)

	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "name", ve.Field)
}

func TestInMemoryRepository_ConcurrentDuplicateCreate(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, testUser("race@b.com"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, common.ErrAlreadyExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// exactly one creation wins, every other attempt resolves to a conflict
	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
}

func TestInMemoryRepository_ReturnedRecordsAreSnapshots(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, testUser("a@b.com"))
	require.NoError(t, err)

	created.Name = "mutated"

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Al", stored.Name)
}

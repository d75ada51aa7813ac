package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/dinos/internal/domain"
	"github.com/pkordes/dinos/internal/repo"
	"github.com/pkordes/dinos/internal/service"
)

// mockDinoRepo is a hand-written test double for repo.DinoRepo.
// Each method is a function field; set only the ones your test needs.
type mockDinoRepo struct {
	create  func(ctx context.Context, dino domain.Dino) (domain.Dino, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Dino, error)
	list    func(ctx context.Context) ([]domain.Dino, error)
	update  func(ctx context.Context, dino domain.Dino) (domain.Dino, error)
	delete  func(ctx context.Context, id uuid.UUID) error
	count   func(ctx context.Context) (int, error)
}

func (m *mockDinoRepo) Create(ctx context.Context, d domain.Dino) (domain.Dino, error) {
	return m.create(ctx, d)
}
func (m *mockDinoRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Dino, error) {
	return m.getByID(ctx, id)
}
func (m *mockDinoRepo) List(ctx context.Context) ([]domain.Dino, error) {
	return m.list(ctx)
}
func (m *mockDinoRepo) Update(ctx context.Context, d domain.Dino) (domain.Dino, error) {
	return m.update(ctx, d)
}
func (m *mockDinoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockDinoRepo) Count(ctx context.Context) (int, error) {
	return m.count(ctx)
}

// compile-time check: mockDinoRepo must satisfy repo.DinoRepo.
var _ repo.DinoRepo = (*mockDinoRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func strPtr(s string) *string { return &s }

func troyAttrs() domain.DinoAttrs {
	return domain.DinoAttrs{
		Name:  strPtr("Troy"),
		Color: strPtr("purple"),
		Breed: strPtr("tyrannosaurus"),
	}
}

// echoRepo returns whatever it receives; useful when a test only cares about
// validation.
func echoRepo() *mockDinoRepo {
	return &mockDinoRepo{
		create: func(_ context.Context, d domain.Dino) (domain.Dino, error) { return d, nil },
		update: func(_ context.Context, d domain.Dino) (domain.Dino, error) { return d, nil },
	}
}

// failOnWrite fails the test if the service reaches the repo.
func failOnWrite(t *testing.T) *mockDinoRepo {
	return &mockDinoRepo{
		create: func(_ context.Context, _ domain.Dino) (domain.Dino, error) {
			t.Fatal("repo.Create must not be called")
			return domain.Dino{}, nil
		},
		update: func(_ context.Context, _ domain.Dino) (domain.Dino, error) {
			t.Fatal("repo.Update must not be called")
			return domain.Dino{}, nil
		},
	}
}

// ---- Create ----------------------------------------------------------------

func TestDinoService_Create_Valid(t *testing.T) {
	svc := service.NewDinoService(echoRepo())

	got, err := svc.Create(context.Background(), troyAttrs())

	require.NoError(t, err)
	assert.Equal(t, "Troy", got.Name)
	assert.Equal(t, "purple", got.Color)
	assert.Equal(t, "tyrannosaurus", got.Breed)
}

func TestDinoService_Create_OnlyNameIsRequired(t *testing.T) {
	svc := service.NewDinoService(echoRepo())

	got, err := svc.Create(context.Background(), domain.DinoAttrs{Name: strPtr("Stan")})

	require.NoError(t, err)
	assert.Empty(t, got.Color)
	assert.Empty(t, got.Breed)
}

func TestDinoService_Create_BlankName(t *testing.T) {
	svc := service.NewDinoService(failOnWrite(t))

	attrs := troyAttrs()
	attrs.Name = strPtr("   ")

	_, err := svc.Create(context.Background(), attrs)

	require.ErrorIs(t, err, domain.ErrValidation)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"can't be blank"}, verr.Fields["name"])
}

func TestDinoService_Create_FieldTooLong(t *testing.T) {
	svc := service.NewDinoService(failOnWrite(t))

	attrs := troyAttrs()
	attrs.Color = strPtr(strings.Repeat("x", 101))

	_, err := svc.Create(context.Background(), attrs)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "color")
	assert.NotContains(t, verr.Fields, "name")
}

func TestDinoService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockDinoRepo{
		create: func(_ context.Context, _ domain.Dino) (domain.Dino, error) {
			return domain.Dino{}, repoErr
		},
	}
	svc := service.NewDinoService(r)

	_, err := svc.Create(context.Background(), troyAttrs())

	assert.ErrorIs(t, err, repoErr)
}

// ---- GetByID ---------------------------------------------------------------

func TestDinoService_GetByID_Found(t *testing.T) {
	want := domain.Dino{ID: uuid.New(), Name: "Troy"}
	r := &mockDinoRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Dino, error) {
			assert.Equal(t, want.ID, id)
			return want, nil
		},
	}
	svc := service.NewDinoService(r)

	got, err := svc.GetByID(context.Background(), want.ID)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDinoService_GetByID_NotFound(t *testing.T) {
	r := &mockDinoRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Dino, error) {
			return domain.Dino{}, domain.ErrNotFound
		},
	}
	svc := service.NewDinoService(r)

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- List ------------------------------------------------------------------

func TestDinoService_List_NilBecomesEmpty(t *testing.T) {
	r := &mockDinoRepo{
		list: func(_ context.Context) ([]domain.Dino, error) { return nil, nil },
	}
	svc := service.NewDinoService(r)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Update ----------------------------------------------------------------

func TestDinoService_Update_AppliesOnlySuppliedFields(t *testing.T) {
	svc := service.NewDinoService(echoRepo())
	existing := domain.Dino{ID: uuid.New(), Name: "Troy", Color: "purple", Breed: "tyrannosaurus"}

	got, err := svc.Update(context.Background(), existing, domain.DinoAttrs{Color: strPtr("gold")})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
	assert.Equal(t, "Troy", got.Name)
	assert.Equal(t, "gold", got.Color)
	assert.Equal(t, "tyrannosaurus", got.Breed)
}

func TestDinoService_Update_InvalidDoesNotWrite(t *testing.T) {
	svc := service.NewDinoService(failOnWrite(t))
	existing := domain.Dino{ID: uuid.New(), Name: "Troy"}

	_, err := svc.Update(context.Background(), existing, domain.DinoAttrs{Name: strPtr("")})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDinoService_Update_NotFound(t *testing.T) {
	r := &mockDinoRepo{
		update: func(_ context.Context, _ domain.Dino) (domain.Dino, error) {
			return domain.Dino{}, domain.ErrNotFound
		},
	}
	svc := service.NewDinoService(r)

	_, err := svc.Update(context.Background(), domain.Dino{ID: uuid.New(), Name: "Troy"}, domain.DinoAttrs{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete ----------------------------------------------------------------

func TestDinoService_Delete_PropagatesNotFound(t *testing.T) {
	r := &mockDinoRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}
	svc := service.NewDinoService(r)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- against the memory store ----------------------------------------------

func TestDinoService_CreateThenGet_RoundTrip(t *testing.T) {
	svc := service.NewDinoService(repo.NewMemoryDinoRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, troyAttrs())
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Troy", got.Name)
	assert.Equal(t, "purple", got.Color)
	assert.Equal(t, "tyrannosaurus", got.Breed)
}

func TestDinoService_DeleteThenGet_NotFound(t *testing.T) {
	svc := service.NewDinoService(repo.NewMemoryDinoRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, troyAttrs())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDinoService_InvalidCreate_DoesNotChangeCount(t *testing.T) {
	svc := service.NewDinoService(repo.NewMemoryDinoRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, troyAttrs())
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.DinoAttrs{Color: strPtr("green")})
	require.ErrorIs(t, err, domain.ErrValidation)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDinoService_InvalidUpdate_LeavesRecordUnchanged(t *testing.T) {
	svc := service.NewDinoService(repo.NewMemoryDinoRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, troyAttrs())
	require.NoError(t, err)
	before, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, before, domain.DinoAttrs{Name: strPtr(""), Color: strPtr("grey")})
	require.ErrorIs(t, err, domain.ErrValidation)

	after, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

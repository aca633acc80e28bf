package post

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/roster"
	"github.com/guardsystem/guardpost-backend-go/internal/repository/memory"
)

func newService() (*PostServiceImpl, *memory.Store) {
	store := memory.NewStore(time.UTC)
	return NewPostService(memory.NewPostRepository(store), memory.NewRosterRepository(store)), store
}

func createReq(name string) post.CreatePostRequest {
	return post.CreatePostRequest{
		Name:         name,
		Latitude:     -23.5505,
		Longitude:    -46.6333,
		RadiusMeters: 100,
		Windows: []post.ShiftWindowRequest{
			{ID: string(post.WindowMorning), Active: true, Start: "06:00", End: "14:00"},
		},
	}
}

func TestCreateDerivesCodeFromLastWord(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), createReq("Posto São Miguel"))
	require.NoError(t, err)

	assert.Equal(t, "MIGUEL-QR", created.Code)
	assert.Equal(t, "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=MIGUEL-QR", created.QRURL)
}

func TestCreateDisambiguatesTakenCode(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	first, err := svc.Create(ctx, createReq("Portaria Central"))
	require.NoError(t, err)
	assert.Equal(t, "CENTRAL-QR", first.Code)

	second, err := svc.Create(ctx, createReq("Estacionamento Central"))
	require.NoError(t, err)
	assert.Equal(t, "CENTRAL-2-QR", second.Code)
}

func TestCreateRequiresWindows(t *testing.T) {
	svc, _ := newService()

	req := createReq("Posto Central")
	req.Windows = nil
	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestUpdateKeepsCodeStable(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createReq("Posto Central"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, post.UpdatePostRequest{
		ID:                created.ID,
		CreatePostRequest: createReq("Posto Renomeado"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Posto Renomeado", updated.Name)
	assert.Equal(t, created.Code, updated.Code, "printed QR plates must stay valid")
	assert.Equal(t, created.QRURL, updated.QRURL)
}

func TestDeleteCascadesRosterEntries(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createReq("Posto Central"))
	require.NoError(t, err)

	plans := memory.NewRosterRepository(store)
	_, err = plans.Create(ctx, roster.PlannedShift{
		ID: "plan-1", PostID: created.ID, EmployeeID: "emp-1",
		Date: "2025-03-10", Window: post.WindowMorning,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, post.ErrPostNotFound)

	left, err := plans.ListByPostAndDate(ctx, created.ID, "2025-03-10")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestDeleteUnknownPost(t *testing.T) {
	svc, _ := newService()
	err := svc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, post.ErrPostNotFound)
}

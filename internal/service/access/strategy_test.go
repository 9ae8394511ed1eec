package access

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mediquip/internal/domain"
	"mediquip/internal/domain/models"
	"mediquip/internal/repository/mongodb"
)

// fakeResource is an in-memory stand-in for an entity service. Every
// document has a precomputed owner, mirroring what the ownership
// traversal would derive; documents missing from the owner map behave
// like resources with a broken reference chain.
type fakeResource struct {
	name   string
	docs   map[string]models.Equipment
	owners map[string]primitive.ObjectID
}

func newFakeResource(name string) *fakeResource {
	return &fakeResource{
		name:   name,
		docs:   map[string]models.Equipment{},
		owners: map[string]primitive.ObjectID{},
	}
}

func (f *fakeResource) add(owner primitive.ObjectID) string {
	id := primitive.NewObjectID()
	f.docs[id.Hex()] = models.Equipment{ID: id}
	f.owners[id.Hex()] = owner
	return id.Hex()
}

func (f *fakeResource) Name() string { return f.name }

func (f *fakeResource) Create(ctx context.Context, doc *models.Equipment) (*models.Equipment, error) {
	return doc, nil
}

func (f *fakeResource) Find(ctx context.Context, query bson.M) ([]models.Equipment, error) {
	out := make([]models.Equipment, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeResource) FindByID(ctx context.Context, id string) (*models.Equipment, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "equipments: not found"}
	}
	return &doc, nil
}

func (f *fakeResource) FindPage(ctx context.Context, query bson.M, page mongodb.PageRequest) (*mongodb.Page[models.Equipment], error) {
	items, _ := f.Find(ctx, query)
	return &mongodb.Page[models.Equipment]{Items: items, Total: int64(len(items))}, nil
}

func (f *fakeResource) Update(ctx context.Context, id string, changes bson.M) (*models.Equipment, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeResource) Delete(ctx context.Context, id string) (bool, error) {
	_, ok := f.docs[id]
	delete(f.docs, id)
	return ok, nil
}

func (f *fakeResource) IsOwner(ctx context.Context, id string, owners []primitive.ObjectID) (bool, error) {
	owner, ok := f.owners[id]
	if !ok {
		return false, nil
	}
	for _, candidate := range owners {
		if candidate == owner {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeResource) FindByUsers(ctx context.Context, owners []primitive.ObjectID, query bson.M, page mongodb.PageRequest) (*mongodb.Page[models.Equipment], error) {
	var items []models.Equipment
	for id, doc := range f.docs {
		if ok, _ := f.IsOwner(ctx, id, owners); ok {
			items = append(items, doc)
		}
	}
	return &mongodb.Page[models.Equipment]{Items: items, Total: int64(len(items))}, nil
}

func pageIDs(page *mongodb.Page[models.Equipment]) []string {
	ids := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		ids = append(ids, item.ID.Hex())
	}
	sort.Strings(ids)
	return ids
}

func companyUser(permissions ...primitive.ObjectID) models.User {
	return models.User{ID: primitive.NewObjectID(), Role: models.RoleCompany, Permissions: permissions}
}

func TestFactorySelectsByRole(t *testing.T) {
	svc := newFakeResource(models.CollEquipments)

	tests := []struct {
		role models.Role
		want any
	}{
		{models.RoleAdmin, &adminStrategy[models.Equipment]{}},
		{models.RoleCompany, &companyStrategy[models.Equipment]{}},
		{models.RoleEngineer, &engineerStrategy[models.Equipment]{}},
		{models.RoleClient, &clientStrategy[models.Equipment]{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			strategy, err := New[models.Equipment](models.User{ID: primitive.NewObjectID(), Role: tt.role}, svc)
			require.NoError(t, err)
			assert.IsType(t, tt.want, strategy)
		})
	}
}

func TestFactoryFailsClosedOnUnknownRole(t *testing.T) {
	svc := newFakeResource(models.CollEquipments)

	for _, role := range []models.Role{"", "superuser", "Admin"} {
		strategy, err := New[models.Equipment](models.User{ID: primitive.NewObjectID(), Role: role}, svc)
		assert.Error(t, err, "role %q must not select a strategy", role)
		assert.Nil(t, strategy)
	}
}

func TestClientGetOne(t *testing.T) {
	client := models.User{ID: primitive.NewObjectID(), Role: models.RoleClient}
	other := primitive.NewObjectID()

	svc := newFakeResource(models.CollEquipments)
	ownID := svc.add(client.ID)
	foreignID := svc.add(other)

	strategy, err := New[models.Equipment](client, svc)
	require.NoError(t, err)

	t.Run("owned resource is readable", func(t *testing.T) {
		doc, err := strategy.GetOne(context.Background(), ownID)
		require.NoError(t, err)
		assert.Equal(t, ownID, doc.ID.Hex())
	})

	t.Run("foreign resource is forbidden", func(t *testing.T) {
		_, err := strategy.GetOne(context.Background(), foreignID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("absent resource is not found, not forbidden", func(t *testing.T) {
		_, err := strategy.GetOne(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestClientSelfAccountBypass(t *testing.T) {
	client := models.User{ID: primitive.NewObjectID(), Role: models.RoleClient}

	// own account readable and editable even though the ownership walk
	// never claims an account owns itself
	svc := newFakeResource(models.CollUsers)
	svc.docs[client.ID.Hex()] = models.Equipment{ID: client.ID}

	strategy, err := New[models.Equipment](client, svc)
	require.NoError(t, err)

	doc, err := strategy.GetOne(context.Background(), client.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, client.ID, doc.ID)

	ok, err := strategy.CanUpdate(context.Background(), client.ID.Hex())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = strategy.CanUpdate(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.False(t, ok, "self-service edit must not extend to other accounts")
}

func TestClientCannotDelete(t *testing.T) {
	client := models.User{ID: primitive.NewObjectID(), Role: models.RoleClient}
	svc := newFakeResource(models.CollEquipments)
	id := svc.add(client.ID)

	strategy, err := New[models.Equipment](client, svc)
	require.NoError(t, err)

	ok, err := strategy.CanDelete(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, ok, "clients may not delete even their own resources")
}

func TestCompanyGetAllScopesToPermissions(t *testing.T) {
	clientA := primitive.NewObjectID()
	clientB := primitive.NewObjectID()
	clientC := primitive.NewObjectID()

	svc := newFakeResource(models.CollEquipments)
	idA := svc.add(clientA)
	idB := svc.add(clientB)
	svc.add(clientC)

	strategy, err := New[models.Equipment](companyUser(clientA, clientB), svc)
	require.NoError(t, err)

	page, err := strategy.GetAll(context.Background(), bson.M{}, mongodb.PageRequest{})
	require.NoError(t, err)

	want := []string{idA, idB}
	sort.Strings(want)
	assert.Equal(t, want, pageIDs(page))
}

func TestCompanyEmptyPermissionsIsNotFound(t *testing.T) {
	svc := newFakeResource(models.CollEquipments)
	svc.add(primitive.NewObjectID())

	strategy, err := New[models.Equipment](companyUser(), svc)
	require.NoError(t, err)

	_, err = strategy.GetAll(context.Background(), bson.M{}, mongodb.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyGetOne(t *testing.T) {
	clientA := primitive.NewObjectID()
	clientB := primitive.NewObjectID()

	svc := newFakeResource(models.CollEquipments)
	inScope := svc.add(clientA)
	outOfScope := svc.add(clientB)

	strategy, err := New[models.Equipment](companyUser(clientA), svc)
	require.NoError(t, err)

	doc, err := strategy.GetOne(context.Background(), inScope)
	require.NoError(t, err)
	assert.Equal(t, inScope, doc.ID.Hex())

	_, err = strategy.GetOne(context.Background(), outOfScope)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCompanyAccountResourceBypassesOwnership(t *testing.T) {
	company := companyUser(primitive.NewObjectID())

	// accounts are never transitively owned, so id reads on the account
	// resource skip the ownership walk entirely
	svc := newFakeResource(models.CollUsers)
	someone := primitive.NewObjectID()
	svc.docs[someone.Hex()] = models.Equipment{ID: someone}

	strategy, err := New[models.Equipment](company, svc)
	require.NoError(t, err)

	doc, err := strategy.GetOne(context.Background(), someone.Hex())
	require.NoError(t, err)
	assert.Equal(t, someone, doc.ID)
}

func TestEngineerMirrorsCompanyScoping(t *testing.T) {
	clientA := primitive.NewObjectID()
	clientB := primitive.NewObjectID()

	svc := newFakeResource(models.CollEquipments)
	idA := svc.add(clientA)
	outOfScope := svc.add(clientB)

	engineer := models.User{
		ID:          primitive.NewObjectID(),
		Role:        models.RoleEngineer,
		Permissions: []primitive.ObjectID{clientA},
	}
	strategy, err := New[models.Equipment](engineer, svc)
	require.NoError(t, err)

	page, err := strategy.GetAll(context.Background(), bson.M{}, mongodb.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{idA}, pageIDs(page))

	_, err = strategy.GetOne(context.Background(), outOfScope)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdminSeesEverything(t *testing.T) {
	svc := newFakeResource(models.CollEquipments)
	for i := 0; i < 3; i++ {
		svc.add(primitive.NewObjectID())
	}

	strategy, err := New[models.Equipment](models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}, svc)
	require.NoError(t, err)

	page, err := strategy.GetAll(context.Background(), bson.M{}, mongodb.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)

	ok, err := strategy.CanUpdate(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = strategy.CanDelete(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.True(t, ok)
}

// Narrower roles never see records a broader scope would hide: the
// client's listing is a subset of a company listing covering that
// client, which in turn is a subset of the admin listing.
func TestScopesNest(t *testing.T) {
	clientA := primitive.NewObjectID()
	clientB := primitive.NewObjectID()

	svc := newFakeResource(models.CollEquipments)
	svc.add(clientA)
	svc.add(clientA)
	svc.add(clientB)

	ctx := context.Background()
	page := mongodb.PageRequest{}

	clientStrat, err := New[models.Equipment](models.User{ID: clientA, Role: models.RoleClient}, svc)
	require.NoError(t, err)
	companyStrat, err := New[models.Equipment](companyUser(clientA, clientB), svc)
	require.NoError(t, err)
	adminStrat, err := New[models.Equipment](models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}, svc)
	require.NoError(t, err)

	clientPage, err := clientStrat.GetAll(ctx, bson.M{}, page)
	require.NoError(t, err)
	companyPage, err := companyStrat.GetAll(ctx, bson.M{}, page)
	require.NoError(t, err)
	adminPage, err := adminStrat.GetAll(ctx, bson.M{}, page)
	require.NoError(t, err)

	assert.Subset(t, pageIDs(companyPage), pageIDs(clientPage))
	assert.Subset(t, pageIDs(adminPage), pageIDs(companyPage))
	assert.Len(t, clientPage.Items, 2)
	assert.Len(t, companyPage.Items, 3)
	assert.Len(t, adminPage.Items, 3)
}

// A broken reference chain makes a resource owned by nobody: clients
// get Forbidden, never a dangling read.
func TestDanglingChainIsInvisible(t *testing.T) {
	client := models.User{ID: primitive.NewObjectID(), Role: models.RoleClient}

	svc := newFakeResource(models.CollEquipments)
	dangling := primitive.NewObjectID()
	svc.docs[dangling.Hex()] = models.Equipment{ID: dangling} // no owner entry

	strategy, err := New[models.Equipment](client, svc)
	require.NoError(t, err)

	_, err = strategy.GetOne(context.Background(), dangling.Hex())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	page, err := strategy.GetAll(context.Background(), bson.M{}, mongodb.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestErrorsCarryStatusCodes(t *testing.T) {
	client := models.User{ID: primitive.NewObjectID(), Role: models.RoleClient}
	svc := newFakeResource(models.CollEquipments)
	foreign := svc.add(primitive.NewObjectID())

	strategy, err := New[models.Equipment](client, svc)
	require.NoError(t, err)

	_, err = strategy.GetOne(context.Background(), foreign)
	var httpErr domain.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 403, httpErr.StatusCode())
}

package address

import (
	"context"
	"errors"
	"testing"

	"storefront-gateway/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	listFn    func() ([]models.Address, error)
	addErr    error
	listCalls int
	addCalls  int
}

func (f *fakeRepository) ListAddresses(context.Context, models.Session) ([]models.Address, error) {
	f.listCalls++
	if f.listFn != nil {
		return f.listFn()
	}
	return nil, nil
}

func (f *fakeRepository) AddAddress(context.Context, models.Session, models.AddAddressRequest) error {
	f.addCalls++
	return f.addErr
}

var testSession = models.Session{UserID: "u1", UpstreamToken: "tok"}

func TestDefaultIndexPicksFirstDefault(t *testing.T) {
	tests := []struct {
		name      string
		addresses []models.Address
		want      int
	}{
		{
			"default at position two",
			[]models.Address{{ID: "a"}, {ID: "b"}, {ID: "c", IsDefault: true}},
			2,
		},
		{
			"first of several defaults wins by list order",
			[]models.Address{{ID: "a"}, {ID: "b", IsDefault: true}, {ID: "c", IsDefault: true}},
			1,
		},
		{
			"no default selects index zero",
			[]models.Address{{ID: "a"}, {ID: "b"}},
			0,
		},
		{
			"empty list selects nothing",
			nil,
			-1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultIndex(tt.addresses))
		})
	}
}

func TestListAddressesFallsBackOnFailure(t *testing.T) {
	repo := &fakeRepository{
		listFn: func() ([]models.Address, error) { return nil, errors.New("upstream down") },
	}
	svc := NewService(repo)

	addresses, index := svc.ListAddresses(context.Background(), testSession)

	// Checkout is never blocked on this failure: one usable placeholder.
	require.Len(t, addresses, 1)
	assert.Equal(t, "Lahore", addresses[0].City)
	assert.True(t, addresses[0].IsDefault)
	assert.Equal(t, 0, index)
}

func TestListAddressesSelectsDefault(t *testing.T) {
	repo := &fakeRepository{
		listFn: func() ([]models.Address, error) {
			return []models.Address{
				{ID: "a1", City: "Karachi"},
				{ID: "a2", City: "Lahore", IsDefault: true},
			}, nil
		},
	}
	svc := NewService(repo)

	addresses, index := svc.ListAddresses(context.Background(), testSession)
	require.Len(t, addresses, 2)
	assert.Equal(t, 1, index)
}

func TestAddAddressRefetchesList(t *testing.T) {
	repo := &fakeRepository{
		listFn: func() ([]models.Address, error) {
			return []models.Address{{ID: "a1", IsDefault: true}}, nil
		},
	}
	svc := NewService(repo)

	addresses, index, err := svc.AddAddress(context.Background(), testSession, models.AddAddressRequest{
		Name:       "Kamran Ali",
		Phone:      "03001234567",
		Street:     "House #123, Street 45",
		City:       "Lahore",
		State:      "Punjab",
		PostalCode: "54000",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.addCalls)
	assert.Equal(t, 1, repo.listCalls, "success triggers a full refetch")
	require.Len(t, addresses, 1)
	assert.Equal(t, 0, index)
}

func TestAddAddressSurfacesUpstreamRejection(t *testing.T) {
	repo := &fakeRepository{
		addErr: &models.UpstreamError{StatusCode: 422, Message: "postal code not serviceable"},
	}
	svc := NewService(repo)

	_, _, err := svc.AddAddress(context.Background(), testSession, models.AddAddressRequest{
		Name: "A", Phone: "1", Street: "s", City: "c", State: "st", PostalCode: "1",
	})

	var upstreamErr *models.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "postal code not serviceable", upstreamErr.Message)
	assert.Zero(t, repo.listCalls, "no refetch after a failed create")
}

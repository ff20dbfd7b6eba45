package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shestoi/GoShopSim/services/analytics/internal/repository"
)

func record(t *testing.T, repo *Repository, name string, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		err := repo.Record(context.Background(), repository.Event{ID: "evt_test", Name: name})
		require.NoError(t, err)
	}
}

func TestRepository_CountAccumulates(t *testing.T) {
	// Arrange
	repo := NewRepository()
	record(t, repo, "user.login", 2)
	record(t, repo, "page.view", 3)

	// Act
	count, err := repo.Count(context.Background())

	// Assert
	require.NoError(t, err)
	require.Equal(t, 5, count)
}

func TestRepository_TopNamesOrdersByCount(t *testing.T) {
	// Arrange
	repo := NewRepository()
	record(t, repo, "cart.add", 1)
	record(t, repo, "user.login", 4)
	record(t, repo, "product.viewed", 2)

	// Act
	top, err := repo.TopNames(context.Background(), 10)

	// Assert
	require.NoError(t, err)
	require.Equal(t, []repository.NameCount{
		{Name: "user.login", Count: 4},
		{Name: "product.viewed", Count: 2},
		{Name: "cart.add", Count: 1},
	}, top)
}

func TestRepository_TopNamesTieBreaksLexicographically(t *testing.T) {
	// Arrange
	repo := NewRepository()
	record(t, repo, "user.logout", 1)
	record(t, repo, "user.login", 1)

	// Act
	top, err := repo.TopNames(context.Background(), 10)

	// Assert
	require.NoError(t, err)
	require.Equal(t, []repository.NameCount{
		{Name: "user.login", Count: 1},
		{Name: "user.logout", Count: 1},
	}, top)
}

func TestRepository_TopNamesTruncates(t *testing.T) {
	// Arrange
	repo := NewRepository()
	record(t, repo, "a.one", 3)
	record(t, repo, "b.two", 2)
	record(t, repo, "c.three", 1)

	// Act
	top, err := repo.TopNames(context.Background(), 2)

	// Assert
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "a.one", top[0].Name)
	require.Equal(t, "b.two", top[1].Name)
}

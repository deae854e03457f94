package cache

import (
	"testing"

	"countries/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestCountryCache_SetAndGet_CaseInsensitive(t *testing.T) {
	c, err := NewCountryCache(128)
	require.NoError(t, err)
	defer c.Close()

	country := domain.Country{ID: 7, Name: "Nigeria", Population: 206139589}

	require.True(t, c.Set(country, c.Generation()))
	c.Wait()

	got, ok := c.Get("nigeria")
	require.True(t, ok)
	require.Equal(t, country, got)

	got, ok = c.Get(" NIGERIA ")
	require.True(t, ok)
	require.Equal(t, int64(7), got.ID)
}

func TestCountryCache_NonASCIIKey(t *testing.T) {
	c, err := NewCountryCache(128)
	require.NoError(t, err)
	defer c.Close()

	c.Set(domain.Country{Name: "Åland Islands"}, c.Generation())
	c.Wait()

	_, ok := c.Get("ÅLAND ISLANDS")
	require.True(t, ok)
}

func TestCountryCache_GetMissWhenEmpty(t *testing.T) {
	c, err := NewCountryCache(64)
	require.NoError(t, err)
	defer c.Close()

	got, ok := c.Get("Ghana")
	require.False(t, ok)
	require.Equal(t, domain.Country{}, got)
}

func TestCountryCache_DelEvictsOnlySpecifiedName(t *testing.T) {
	c, err := NewCountryCache(256)
	require.NoError(t, err)
	defer c.Close()

	gen := c.Generation()
	c.Set(domain.Country{Name: "Ghana"}, gen)
	c.Set(domain.Country{Name: "Togo"}, gen)
	c.Wait()

	c.Del("GHANA")

	_, ok := c.Get("Ghana")
	require.False(t, ok)
	_, ok = c.Get("Togo")
	require.True(t, ok)
}

func TestCountryCache_ClearEvictsEverything(t *testing.T) {
	c, err := NewCountryCache(256)
	require.NoError(t, err)
	defer c.Close()

	gen := c.Generation()
	c.Set(domain.Country{Name: "Ghana"}, gen)
	c.Set(domain.Country{Name: "Togo"}, gen)
	c.Wait()

	c.Clear()

	_, ok := c.Get("Ghana")
	require.False(t, ok)
	_, ok = c.Get("Togo")
	require.False(t, ok)
}

func TestCountryCache_SetAfterDelWithOldGenerationIsDropped(t *testing.T) {
	c, err := NewCountryCache(64)
	require.NoError(t, err)
	defer c.Close()

	gen := c.Generation()
	c.Del("Kenya")

	require.False(t, c.Set(domain.Country{Name: "Kenya"}, gen))
	c.Wait()
	_, ok := c.Get("Kenya")
	require.False(t, ok)

	require.True(t, c.Set(domain.Country{Name: "Kenya"}, c.Generation()))
}

func TestCountryCache_SetAfterClearWithOldGenerationIsDropped(t *testing.T) {
	c, err := NewCountryCache(64)
	require.NoError(t, err)
	defer c.Close()

	gen := c.Generation()
	c.Clear()

	require.False(t, c.Set(domain.Country{Name: "Kenya"}, gen))
	c.Wait()
	_, ok := c.Get("Kenya")
	require.False(t, ok)
}

func TestNewCountryCache_DefaultsCapacity(t *testing.T) {
	c, err := NewCountryCache(0)
	require.NoError(t, err)
	defer c.Close()
	require.NotNil(t, c.cache)
}

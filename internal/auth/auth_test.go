package auth

import (
	"testing"
	"time"

	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilities_ByRole(t *testing.T) {
	tests := []struct {
		role    model.Role
		allowed []Capability
		denied  []Capability
		home    Screen
	}{
		{
			role:    model.RoleAdmin,
			allowed: []Capability{CatalogView, CatalogManage, UsersManage, SalesView, Ordering, Dashboard, InventoryAdjust},
			home:    ScreenAdmin,
		},
		{
			role:    model.RoleManager,
			allowed: []Capability{CatalogView, CatalogManage, UsersManage, SalesView, InventoryAdjust},
			denied:  []Capability{Ordering, Dashboard},
			home:    ScreenManager,
		},
		{
			role:    model.RoleStaff,
			allowed: []Capability{CatalogView, Ordering},
			denied:  []Capability{CatalogManage, UsersManage, SalesView, Dashboard, InventoryAdjust},
			home:    ScreenStaff,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			for _, c := range tt.allowed {
				assert.True(t, HasCapability(tt.role, c), c)
			}
			for _, c := range tt.denied {
				assert.False(t, HasCapability(tt.role, c), c)
			}
			assert.ElementsMatch(t, tt.allowed, Capabilities(tt.role))
			assert.Equal(t, tt.home, HomeScreen(tt.role))
		})
	}
}

func TestCapabilities_UnknownRole(t *testing.T) {
	assert.Empty(t, Capabilities("Owner"))
	assert.False(t, HasCapability("Owner", CatalogView))
	assert.Equal(t, ScreenLogin, HomeScreen("Owner"))
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	u := &model.User{BaseModel: model.BaseModel{ID: "u-1"}, Email: "a@b.c", Role: model.RoleStaff}

	token, exp, err := m.Issue(u)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, model.RoleStaff, claims.Role)
}

func TestTokenManager_RejectsExpiredAndForeignTokens(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)
	u := &model.User{BaseModel: model.BaseModel{ID: "u-1"}, Role: model.RoleAdmin}

	token, _, err := m.Issue(u)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.Validate(token)
	assert.Error(t, err)

	other := NewTokenManager("other-secret", time.Minute)
	_, err = other.Validate(token)
	assert.Error(t, err)
}

package access_test

import (
	"testing"

	"go-pos-console/internal/access"
	"go-pos-console/internal/model"

	"github.com/stretchr/testify/assert"
)

func principalWith(tokens ...string) *model.Principal {
	return &model.Principal{ID: "u-1", Username: "ana", Permissions: model.NewPermissionSet(tokens...)}
}

func TestIsAllowed_NilPrincipalFailsClosed(t *testing.T) {
	assert.False(t, access.IsAllowed([]string{"sales:read"}, access.ModeAll, nil))
	assert.False(t, access.IsAllowed([]string{"sales:read"}, access.ModeAny, nil))
	assert.False(t, access.IsAllowed(nil, access.ModeAll, nil))
	assert.False(t, access.Allows("sales:read", nil))
}

func TestIsAllowed_EmptyRequirementAllowed(t *testing.T) {
	p := principalWith()
	assert.True(t, access.IsAllowed([]string{}, access.ModeAny, p))
	assert.True(t, access.IsAllowed(nil, access.ModeAll, p))
}

func TestIsAllowed_Modes(t *testing.T) {
	p := principalWith("sales:read", "products:read")

	tests := []struct {
		name     string
		required []string
		mode     access.Mode
		want     bool
	}{
		{"any one present", []string{"sales:create", "sales:read"}, access.ModeAny, true},
		{"any none present", []string{"sales:create", "users:read"}, access.ModeAny, false},
		{"all present", []string{"sales:read", "products:read"}, access.ModeAll, true},
		{"all one missing", []string{"sales:read", "users:read"}, access.ModeAll, false},
		{"unknown mode acts as all", []string{"sales:read", "users:read"}, access.Mode("SOME"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.IsAllowed(tt.required, tt.mode, p))
		})
	}
}

func TestAllows_SingleToken(t *testing.T) {
	p := principalWith("offers:read")
	assert.True(t, access.Allows("offers:read", p))
	assert.False(t, access.Allows("offers:create", p))
}

func TestIsAllowed_Pure(t *testing.T) {
	p := principalWith("sales:read")
	for i := 0; i < 3; i++ {
		assert.True(t, access.IsAllowed([]string{"sales:read"}, access.ModeAll, p))
	}
	assert.Equal(t, 1, p.Permissions.Len())
}

func TestVisible_CompositeGroups(t *testing.T) {
	p := principalWith("sales:create", "products:read")

	items := access.Visible(access.DefaultNav(), p)

	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key)
	}
	assert.Equal(t, []string{"sales", "catalog"}, keys)
	assert.Len(t, items[0].Children, 1)
	assert.Equal(t, "sales.register", items[0].Children[0].Key)
	assert.Len(t, items[1].Children, 1)
}

func TestVisible_NilPrincipalSeesNothing(t *testing.T) {
	assert.Empty(t, access.Visible(access.DefaultNav(), nil))
}

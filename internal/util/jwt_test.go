package util

import (
	"testing"
	"time"

	"campus_lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{
		BaseModel: model.BaseModel{ID: 42},
		Name:      "Ana",
		Email:     "ana@example.com",
		Role:      model.Admin,
		Campus:    "North",
	}

	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.Admin, claims.Role)
	assert.Equal(t, "North", claims.Campus)
	assert.False(t, claims.CanViewAllCampuses)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}}
	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "another-secret-another-secret-xx")
	assert.Error(t, err)
}

func TestClaimsScope(t *testing.T) {
	cases := []struct {
		name   string
		claims Claims
		want   model.Scope
	}{
		{
			name:   "plain admin sees own campus",
			claims: Claims{Role: model.Admin, Campus: "North"},
			want:   model.Scope{CanViewAllCampuses: false, OwnCampus: "North"},
		},
		{
			name:   "capability flag widens scope",
			claims: Claims{Role: model.Admin, Campus: "North", CanViewAllCampuses: true},
			want:   model.Scope{CanViewAllCampuses: true, OwnCampus: "North"},
		},
		{
			name:   "superadmin widens implicitly",
			claims: Claims{Role: model.SuperAdmin, Campus: "South"},
			want:   model.Scope{CanViewAllCampuses: true, OwnCampus: "South"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.claims.Scope())
		})
	}
}

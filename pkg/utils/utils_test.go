package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/domain/user"
	"github.com/linskybing/simtrack/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(target string, params gin.Params) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	c.Params = params
	return c
}

func TestParams(t *testing.T) {
	id := uuid.New()
	c := newContext("/?limit=20&offset=x", gin.Params{
		{Key: "id", Value: id.String()},
		{Key: "uid", Value: "42"},
		{Key: "bad", Value: "-1"},
	})

	got, err := ParseUUIDParam(c, "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseUUIDParam(c, "uid")
	assert.EqualError(t, err, "invalid uid")

	n, err := ParseUintParam(c, "uid")
	require.NoError(t, err)
	assert.Equal(t, uint(42), n)

	_, err = ParseUintParam(c, "bad")
	assert.Error(t, err)

	assert.Equal(t, 20, QueryInt(c, "limit", 50))
	assert.Equal(t, 0, QueryInt(c, "offset", 0))
	assert.Equal(t, 7, QueryInt(c, "missing", 7))
}

func TestClaimsHelpers(t *testing.T) {
	c := newContext("/", nil)

	_, err := GetClaims(c)
	assert.ErrorIs(t, err, ErrNoClaims)
	assert.Equal(t, user.Role(""), GetRoleFromContext(c))

	c.Set("claims", &types.Claims{UserID: 3, Username: "ana", Role: user.RoleEngineer})

	uid, err := GetUserIDFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, uint(3), uid)
	assert.Equal(t, user.RoleEngineer, GetRoleFromContext(c))

	actor, err := ActorFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, "ana", actor.Name)
	assert.Equal(t, uint(3), actor.ID)
}

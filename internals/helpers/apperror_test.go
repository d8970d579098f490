package helper

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func statusFor(t *testing.T, err error) int {
	t.Helper()
	app := fiber.New()
	app.Get("/t", func(c *fiber.Ctx) error {
		return JsonAppError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest("GET", "/t", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestJsonAppErrorStatusMapping(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, statusFor(t, NewValidation("bad", map[string]string{"x": "required"})))
	assert.Equal(t, fiber.StatusConflict, statusFor(t, NewConflict("dup")))
	assert.Equal(t, fiber.StatusForbidden, statusFor(t, NewPermissionDenied("no")))
	assert.Equal(t, fiber.StatusNotFound, statusFor(t, NewNotFound("missing")))
	assert.Equal(t, fiber.StatusInternalServerError, statusFor(t, NewUnavailable("down")))
	assert.Equal(t, fiber.StatusNotFound, statusFor(t, gorm.ErrRecordNotFound))
	assert.Equal(t, fiber.StatusInternalServerError, statusFor(t, errors.New("driver exploded")))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))

	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))

	// pgx-style and sqlite-style messages, seen only as strings
	assert.True(t, IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "tutors_user_id_key" (SQLSTATE 23505)`)))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: tuition_applications.posting_id, tuition_applications.tutor_id")))
}

func TestResolvePagingDefaultsAndCaps(t *testing.T) {
	app := fiber.New()
	var got Paging
	app.Get("/t", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/t", nil))
	require.NoError(t, err)
	assert.Equal(t, Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}, got)

	_, err = app.Test(httptest.NewRequest("GET", "/t?page=3&per_page=10", nil))
	require.NoError(t, err)
	assert.Equal(t, Paging{Page: 3, PerPage: 10, Offset: 20, Limit: 10}, got)

	_, err = app.Test(httptest.NewRequest("GET", "/t?page=-2&per_page=9999", nil))
	require.NoError(t, err)
	assert.Equal(t, Paging{Page: 1, PerPage: 100, Offset: 0, Limit: 100}, got)

	// limit= is accepted as an alias
	_, err = app.Test(httptest.NewRequest("GET", "/t?limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, 5, got.PerPage)
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(Paging{Page: 2, PerPage: 10}, 35, 10)
	assert.Equal(t, 4, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := BuildPagination(Paging{Page: 4, PerPage: 10}, 35, 5)
	assert.False(t, last.HasNext)
	assert.Equal(t, 5, last.Count)
}

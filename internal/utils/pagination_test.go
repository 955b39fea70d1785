package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePagination(t *testing.T) {
	tests := []struct {
		name               string
		page, limit        int
		total              int64
		wantLast, from, to int
		hasMore            bool
	}{
		{name: "empty", page: 1, limit: 25, total: 0, wantLast: 0, from: 0, to: 0},
		{name: "first page", page: 1, limit: 10, total: 25, wantLast: 3, from: 1, to: 10, hasMore: true},
		{name: "last partial page", page: 3, limit: 10, total: 25, wantLast: 3, from: 21, to: 25},
		{name: "bad input", page: 0, limit: 0, total: 5, wantLast: 1, from: 1, to: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := CalculatePagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.wantLast, meta.LastPage)
			assert.Equal(t, tt.from, meta.From)
			assert.Equal(t, tt.to, meta.To)
			assert.Equal(t, tt.hasMore, meta.HasMore)
		})
	}
}

func TestGetPaginationParams(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(GetPaginationParams(c, "upload_date", "file_name"))
	})

	tests := []struct {
		query string
		want  PaginationParams
	}{
		{query: "", want: PaginationParams{Page: 1, Limit: 25, OrderBy: "upload_date", OrderDir: "desc"}},
		{query: "?page=2&limit=10&order_by=file_name&order_dir=asc&search=march", want: PaginationParams{Page: 2, Limit: 10, Search: "march", OrderBy: "file_name", OrderDir: "asc"}},
		{query: "?page=-4&limit=7&order_by=content;drop&order_dir=sideways", want: PaginationParams{Page: 1, Limit: 25, OrderBy: "upload_date", OrderDir: "desc"}},
	}

	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
		require.NoError(t, err)

		var got PaginationParams
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, tt.want, got, tt.query)
	}
}

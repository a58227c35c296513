package admin

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"blog-backend/testutils"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func TestGetDashboardStats_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "articles"`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "articles" WHERE status = \$1`).
		WithArgs("published").
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(8))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "articles" WHERE status = \$1`).
		WithArgs("draft").
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(5))

	r := testutils.SetupTestRouter()
	r.GET("/admin/dashboard", GetDashboardStats)

	req, _ := http.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			TotalArticles  int64 `json:"totalArticles"`
			PublishedCount int64 `json:"publishedCount"`
			DraftCount     int64 `json:"draftCount"`
			TotalUsers     int64 `json:"totalUsers"`
		} `json:"data"`
	}
	json.Unmarshal(resp.Body.Bytes(), &response)

	assert.True(t, response.Success)
	assert.Equal(t, int64(12), response.Data.TotalArticles)
	assert.Equal(t, int64(8), response.Data.PublishedCount)
	assert.Equal(t, int64(4), response.Data.DraftCount)
	assert.Equal(t, int64(5), response.Data.TotalUsers)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllArticles_IncludesDrafts(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	now := time.Now()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "articles"`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery(`SELECT \* FROM "articles" ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(20).
		WillReturnRows(mock.NewRows([]string{"id", "user_id", "title", "slug", "content", "status", "created_at", "updated_at"}).
			AddRow("article-1", "user-1", "Published one", "published-one", "content", "published", now, now).
			AddRow("article-2", "user-1", "Draft one", "draft-one", "content", "draft", now.Add(-time.Hour), now))

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1`).
		WithArgs("user-1").
		WillReturnRows(mock.NewRows([]string{"id", "email", "password", "user_name", "role"}).
			AddRow("user-1", "author@example.com", "hashed", "author", "USER"))

	r := testutils.SetupTestRouter()
	r.GET("/admin/articles", GetAllArticles)

	req, _ := http.NewRequest(http.MethodGet, "/admin/articles", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var page struct {
		Items []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
			Author struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			} `json:"author"`
		} `json:"items"`
		PageSize   int   `json:"pageSize"`
		TotalItems int64 `json:"totalItems"`
	}
	json.Unmarshal(resp.Body.Bytes(), &page)

	assert.Len(t, page.Items, 2)
	assert.Equal(t, "draft", page.Items[1].Status)
	assert.Equal(t, "author@example.com", page.Items[0].Author.Email)
	assert.Empty(t, page.Items[0].Author.Password)
	assert.Equal(t, 20, page.PageSize)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllUsers_AnnotatesArticleCount(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	now := time.Now()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery(`SELECT users\.\*, count\(articles\.id\) AS article_count FROM "users" LEFT JOIN articles`).
		WillReturnRows(mock.NewRows([]string{"id", "email", "password", "user_name", "role", "article_count", "created_at", "updated_at"}).
			AddRow("user-1", "writer@example.com", "hashed", "writer", "USER", 3, now, now).
			AddRow("user-2", "quiet@example.com", "hashed", "quiet", "USER", 0, now, now))

	r := testutils.SetupTestRouter()
	r.GET("/admin/users", GetAllUsers)

	req, _ := http.NewRequest(http.MethodGet, "/admin/users", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var page struct {
		Items []struct {
			Email        string `json:"email"`
			Password     string `json:"password"`
			ArticleCount int64  `json:"articleCount"`
		} `json:"items"`
		TotalItems int64 `json:"totalItems"`
	}
	json.Unmarshal(resp.Body.Bytes(), &page)

	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Items[0].ArticleCount)
	assert.Equal(t, int64(0), page.Items[1].ArticleCount)
	assert.Empty(t, page.Items[0].Password)
	assert.Equal(t, int64(2), page.TotalItems)

	assert.NoError(t, mock.ExpectationsWereMet())
}

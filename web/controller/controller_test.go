package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bibliophile/database"
	"bibliophile/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Handlers log on register, login and service errors, so the package logger
// must be live before any request is served.
func TestMain(m *testing.M) {
	logger.InitLogger(logging.DEBUG)
	os.Exit(m.Run())
}

// newTestRouter assembles the same engine web.Server builds, minus CORS and
// gzip, over a throwaway database.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if err := database.InitDB(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = database.CloseDB()
	})

	engine := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	store.Options(sessions.Options{Path: "/", MaxAge: 86400, HttpOnly: true})
	engine.Use(sessions.Sessions("USER_SESSION", store))

	g := engine.Group("/")
	NewAuthController(g)
	NewQuoteController(g)
	NewReviewController(g)
	NewBooklistController(g)
	NewFollowerController(g)
	return engine
}

func doRequest(engine *gin.Engine, method, path, body string, cookies []string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.Header.Add("Cookie", ck)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func cookiesFrom(w *httptest.ResponseRecorder) []string {
	cookies := make([]string, 0)
	for _, c := range w.Result().Cookies() {
		cookies = append(cookies, c.Name+"="+c.Value)
	}
	return cookies
}

// register creates a user through the API and returns the session cookie.
func register(t *testing.T, engine *gin.Engine, username string) []string {
	t.Helper()
	body := fmt.Sprintf(`{"email":"%s@example.com","username":%q,"password":"secret123"}`, username, username)
	w := doRequest(engine, http.MethodPost, "/register", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	cookies := cookiesFrom(w)
	require.NotEmpty(t, cookies)
	return cookies
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decodeBody(t, w)["message"].(string)
	return msg
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	engine := newTestRouter(t)

	register(t, engine, "alice")

	w := doRequest(engine, http.MethodPost, "/register",
		`{"email":"other@example.com","username":"alice","password":"secret123"}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username already exists", messageOf(t, w))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	engine := newTestRouter(t)
	register(t, engine, "alice")

	wrongPassword := doRequest(engine, http.MethodPost, "/login",
		`{"username":"alice","password":"nope"}`, nil)
	unknownUser := doRequest(engine, http.MethodPost, "/login",
		`{"username":"mallory","password":"nope"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, messageOf(t, wrongPassword), messageOf(t, unknownUser))

	ok := doRequest(engine, http.MethodPost, "/login",
		`{"username":"alice","password":"secret123"}`, nil)
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.NotEmpty(t, cookiesFrom(ok))
}

func TestMeRequiresSession(t *testing.T) {
	engine := newTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authenticated", messageOf(t, w))

	cookies := register(t, engine, "alice")
	w = doRequest(engine, http.MethodGet, "/me", "", cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	profile := decodeBody(t, w)
	assert.Equal(t, "alice", profile["username"])
	// fresh account: empty collections, not a missing profile
	assert.Empty(t, profile["booklists"])
	assert.Empty(t, profile["quotes"])
	assert.Empty(t, profile["reviews"])
}

func TestUserLookup(t *testing.T) {
	engine := newTestRouter(t)
	register(t, engine, "alice")

	w := doRequest(engine, http.MethodGet, "/users/alice", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decodeBody(t, w)["username"])

	w = doRequest(engine, http.MethodGet, "/users/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewValidationRunsBeforeStorage(t *testing.T) {
	engine := newTestRouter(t)
	cookies := register(t, engine, "bob")

	reviewBody := func(bookId string, rate int) string {
		return fmt.Sprintf(`{"bookId":%q,"rate":%d,"favorite":false,"reviewedAt":"2024-01-01"}`, bookId, rate)
	}

	w := doRequest(engine, http.MethodPost, "/reviews", reviewBody("OL1M", 11), cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Rate must be between 0 and 10", messageOf(t, w))

	w = doRequest(engine, http.MethodPost, "/reviews", reviewBody("OL1M", -1), cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(engine, http.MethodPost, "/reviews", reviewBody("", 5), cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Book ID is required", messageOf(t, w))

	// nothing was written by the rejected requests
	list := doRequest(engine, http.MethodGet, "/reviews", "", nil)
	assert.Equal(t, http.StatusOK, list.Code)
	assert.Equal(t, "[]", strings.TrimSpace(list.Body.String()))

	// boundaries are inclusive
	w = doRequest(engine, http.MethodPost, "/reviews", reviewBody("OL1M", 0), cookies)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doRequest(engine, http.MethodPost, "/reviews", reviewBody("OL2M", 10), cookies)
	assert.Equal(t, http.StatusCreated, w.Code)

	// owner-gated route without a session
	w = doRequest(engine, http.MethodPost, "/reviews", reviewBody("OL3M", 5), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReviewsByBookCarryUsername(t *testing.T) {
	engine := newTestRouter(t)
	cookies := register(t, engine, "bob")

	w := doRequest(engine, http.MethodPost, "/reviews",
		`{"bookId":"OL1M","rate":8,"favorite":true,"reviewedAt":"2024-01-01"}`, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, messageOf(t, w), "Review created successfully - Review ID:")

	list := doRequest(engine, http.MethodGet, "/reviews/book/OL1M", "", nil)
	require.Equal(t, http.StatusOK, list.Code)

	var reviews []map[string]any
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "bob", reviews[0]["username"])
	assert.Equal(t, float64(8), reviews[0]["rate"])
	assert.Equal(t, true, reviews[0]["favorite"])
	assert.Equal(t, "2024-01-01", reviews[0]["reviewedAt"])
}

func TestQuoteOwnershipOverHTTP(t *testing.T) {
	engine := newTestRouter(t)
	alice := register(t, engine, "alice")
	bob := register(t, engine, "bob")

	w := doRequest(engine, http.MethodPost, "/quotes", `{"content":"so it goes"}`, alice)
	require.Equal(t, http.StatusCreated, w.Code)

	list := doRequest(engine, http.MethodGet, "/quotes", "", nil)
	var quotes []map[string]any
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &quotes))
	require.Len(t, quotes, 1)
	quoteId := int(quotes[0]["id"].(float64))
	path := fmt.Sprintf("/quotes/%d", quoteId)

	w = doRequest(engine, http.MethodPut, path, `{"content":"stolen"}`, bob)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You don't own this quote", messageOf(t, w))

	w = doRequest(engine, http.MethodPut, path, `{"content":"stolen"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(engine, http.MethodPut, path, `{"content":"updated"}`, alice)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(engine, http.MethodDelete, path, "", bob)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(engine, http.MethodDelete, path, "", alice)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvalidIdParam(t *testing.T) {
	engine := newTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/quotes/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(engine, http.MethodGet, "/quotes/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBooklistEndToEnd(t *testing.T) {
	engine := newTestRouter(t)
	alice := register(t, engine, "alice")

	w := doRequest(engine, http.MethodPost, "/booklists",
		`{"listName":"Favorites","listDescription":"My top picks"}`, alice)
	require.Equal(t, http.StatusCreated, w.Code)
	msg := messageOf(t, w)
	require.Contains(t, msg, "Booklist created successfully - Booklist ID: ")

	var booklistId int
	_, err := fmt.Sscanf(msg[strings.LastIndex(msg, ":")+1:], " %d", &booklistId)
	require.NoError(t, err)

	w = doRequest(engine, http.MethodGet, fmt.Sprintf("/booklists/%d/books", booklistId), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Favorites", body["listName"])
	assert.Equal(t, "My top picks", body["listDescription"])
	assert.Empty(t, body["books"])

	booksPath := fmt.Sprintf("/booklists/%d/books", booklistId)
	w = doRequest(engine, http.MethodPost, booksPath, `{"bookId":"OL1M"}`, alice)
	assert.Equal(t, http.StatusCreated, w.Code)

	// adding the same book again conflicts instead of duplicating the row
	w = doRequest(engine, http.MethodPost, booksPath, `{"bookId":"OL1M"}`, alice)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(engine, http.MethodGet, booksPath, "", nil)
	body = decodeBody(t, w)
	assert.Equal(t, []any{"OL1M"}, body["books"])

	w = doRequest(engine, http.MethodDelete, booksPath+"/OL1M", "", alice)
	assert.Equal(t, http.StatusOK, w.Code)

	// duplicate list name for the same user conflicts
	w = doRequest(engine, http.MethodPost, "/booklists",
		`{"listName":"Favorites"}`, alice)
	assert.Equal(t, http.StatusConflict, w.Code)
}

// Static segments like /reviews/user and /followers/check share a prefix
// with param siblings (/reviews/:id, /followers/:identifier); both kinds
// must resolve, and the requests they serve may log.
func TestStaticAndParamSiblingRoutes(t *testing.T) {
	engine := newTestRouter(t)
	cookies := register(t, engine, "alice")

	w := doRequest(engine, http.MethodPost, "/reviews",
		`{"bookId":"OL1M","rate":7,"favorite":false,"reviewedAt":"2024-01-01"}`, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(engine, http.MethodGet, "/reviews/user/alice", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var reviews []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	assert.Len(t, reviews, 1)

	w = doRequest(engine, http.MethodGet, "/reviews/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(engine, http.MethodGet, "/followers/check?followerId=1&followeeId=1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(engine, http.MethodGet, "/followers/alice/following", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFollowFlow(t *testing.T) {
	engine := newTestRouter(t)
	alice := register(t, engine, "alice")
	register(t, engine, "bob")

	// ids are assigned in registration order
	checkPath := "/followers/check?followerId=1&followeeId=2"

	w := doRequest(engine, http.MethodGet, checkPath, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["isFollowing"])

	w = doRequest(engine, http.MethodPost, "/followers", `{"followeeId":1}`, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User cannot follow themselves", messageOf(t, w))

	w = doRequest(engine, http.MethodPost, "/followers", `{"followeeId":2}`, alice)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(engine, http.MethodPost, "/followers", `{"followeeId":2}`, alice)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(engine, http.MethodGet, checkPath, "", nil)
	assert.Equal(t, true, decodeBody(t, w)["isFollowing"])

	w = doRequest(engine, http.MethodGet, "/followers/bob/followers", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var follows []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &follows))
	assert.Len(t, follows, 1)

	w = doRequest(engine, http.MethodDelete, "/followers", `{"followeeId":2}`, alice)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(engine, http.MethodGet, checkPath, "", nil)
	assert.Equal(t, false, decodeBody(t, w)["isFollowing"])

	w = doRequest(engine, http.MethodGet, "/followers/check?followerId=1", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

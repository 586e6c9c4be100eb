package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/ZiroWagner/TaskManager/internal/auth"
	"github.com/ZiroWagner/TaskManager/internal/database"
	"github.com/ZiroWagner/TaskManager/internal/models"
	"github.com/ZiroWagner/TaskManager/internal/storage"
	"github.com/ZiroWagner/TaskManager/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTest wires an in-memory DB and a temp-dir file store, the same way
// main wires the real ones.
func setupTest(t *testing.T) (*gorm.DB, *storage.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	SetUploads(store)

	return db, store
}

func seedUser(t *testing.T, db *gorm.DB, id uint, email string) models.User {
	t.Helper()
	user := models.User{ID: id, Email: email, Name: "user", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func authedRequest(t *testing.T, method, target string, body io.Reader, user models.User) *http.Request {
	t.Helper()
	token, err := auth.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// multipartFile builds a multipart body with a single "file" part carrying
// an explicit Content-Type (CreateFormFile would force octet-stream).
func multipartFile(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

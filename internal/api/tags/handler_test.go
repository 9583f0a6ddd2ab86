package tags_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"art-inventory/database"
	tagsapi "art-inventory/internal/api/tags"
	"art-inventory/internal/domain/tags"
	"art-inventory/internal/testutil"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	database.DB = testutil.DB(t)

	r := gin.New()
	r.POST("/tags", tagsapi.CreateTag)
	r.PUT("/tags/:id", tagsapi.UpdateTag)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTagRejectsDuplicateName(t *testing.T) {
	r := setup(t)

	w := doJSON(t, r, http.MethodPost, "/tags", gin.H{"name": "urban", "color": "#111111"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/tags", gin.H{"name": "urban"})
	require.Equal(t, http.StatusConflict, w.Code)

	var n int64
	require.NoError(t, database.DB.Model(&tags.Tag{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestUpdateTagRejectsDuplicateName(t *testing.T) {
	r := setup(t)

	require.NoError(t, database.DB.Create(&tags.Tag{Name: "urban"}).Error)
	other := tags.Tag{Name: "rural"}
	require.NoError(t, database.DB.Create(&other).Error)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/tags/%d", other.ID), gin.H{"name": "urban"})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateTagWithEmptyBody(t *testing.T) {
	r := setup(t)

	tag := tags.Tag{Name: "urban", Color: "#111111"}
	require.NoError(t, database.DB.Create(&tag).Error)

	// no fields set means nothing to write, not a missing tag
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/tags/%d", tag.ID), gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	var got tags.Tag
	require.NoError(t, database.DB.First(&got, tag.ID).Error)
	require.Equal(t, "urban", got.Name)
	require.Equal(t, "#111111", got.Color)

	w = doJSON(t, r, http.MethodPut, "/tags/9999", gin.H{})
	require.Equal(t, http.StatusNotFound, w.Code)
}

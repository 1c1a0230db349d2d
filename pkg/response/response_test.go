package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginatedUsesSnakeCase(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/help-requests?page=2&limit=2", nil), rec)

	require.NoError(t, Paginated(c, []string{"c", "d"}, 5, 2, 2))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body.Data["page_size"])
	assert.Equal(t, float64(3), body.Data["total_pages"])
	assert.Equal(t, float64(5), body.Data["total"])
	assert.NotContains(t, body.Data, "pageSize")
	assert.NotContains(t, body.Data, "totalPages")
}

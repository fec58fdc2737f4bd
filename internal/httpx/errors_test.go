package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindLine struct {
	ItemID   string `json:"item_id"  binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1,max=99"`
}

type bindBody struct {
	Lines []bindLine `json:"lines" binding:"dive"`
}

func TestFailBind(t *testing.T) {
	UseJSONFieldNames()
	r := gin.New()
	r.POST("/x", func(c *gin.Context) {
		var b bindBody
		if err := c.ShouldBindJSON(&b); err != nil {
			FailBind(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	post := func(body string) (*httptest.ResponseRecorder, HTTPError) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		var he HTTPError
		if w.Body.Len() > 0 {
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &he))
		}
		return w, he
	}

	w, he := post(`{"lines":[{"item_id":"a","quantity":100},{"quantity":2}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, he.Errors, 2)
	assert.Equal(t, "lines[0].quantity", he.Errors[0].Field)
	assert.Equal(t, "quantity must be at most 99", he.Errors[0].Message)
	assert.Equal(t, "lines[1].item_id", he.Errors[1].Field)

	w, he = post(`{"lines":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid json", he.Error)
	assert.Empty(t, he.Errors)

	w, _ = post(`{"lines":[{"item_id":"a","quantity":3}]}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

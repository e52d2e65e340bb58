package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type payload struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required,notblank"`
}

func bindBody(t *testing.T, body string) map[string]string {
	t.Helper()
	Setup()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var p payload
	return Bind(c, &p)
}

func TestBindValid(t *testing.T) {
	assert.Nil(t, bindBody(t, `{"email":"a@srs.edu","fullName":"Ada"}`))
}

func TestBindUsesJSONNames(t *testing.T) {
	fields := bindBody(t, `{"email":"not-an-email","fullName":"   "}`)

	assert.Contains(t, fields, "email")
	assert.Equal(t, "fullName must not be blank", fields["fullName"])
}

func TestBindMalformed(t *testing.T) {
	fields := bindBody(t, `{"email":`)

	assert.Equal(t, map[string]string{"detail": "Malformed JSON body"}, fields)
}

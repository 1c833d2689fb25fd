package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ValidatesBaseURL(t *testing.T) {
	_, err := New("", time.Second, nil)
	assert.Error(t, err)

	_, err = New("ftp://pets.local", time.Second, nil)
	assert.Error(t, err)

	c, err := New("http://pets.local/api/", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://pets.local/api", c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.http.Timeout)
}

func TestGetJSON(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		switch r.URL.Path {
		case "/pets/1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"1","name":"Milo"}`))
		case "/pets/broken":
			_, _ = w.Write([]byte(`{`))
		default:
			http.Error(w, "not here", http.StatusNotFound)
		}
	}))
	defer ts.Close()

	c, err := New(ts.URL, time.Second, nil)
	require.NoError(t, err)

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, c.GetJSON(context.Background(), &out, "pets", "1"))
	assert.Equal(t, "Milo", out.Name)

	err = c.GetJSON(context.Background(), &out, "pets", "a/b")
	assert.Equal(t, "/pets/a%2Fb", gotPath)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "not here")

	err = c.GetJSON(context.Background(), &out, "pets", "broken")
	assert.Error(t, err)
	assert.False(t, IsStatus(err, http.StatusNotFound))
}

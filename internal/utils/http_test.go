package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Run("writes body and headers", func(t *testing.T) {
		w := httptest.NewRecorder()

		n, err := WriteJSON(w, map[string]string{"status": "ok"}, 201)
		require.NoError(t, err)
		assert.Positive(t, n)

		assert.Equal(t, 201, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("unmarshalable value", func(t *testing.T) {
		w := httptest.NewRecorder()

		_, err := WriteJSON(w, make(chan int), 200)
		assert.Error(t, err)
		assert.Equal(t, 500, w.Code)
	})
}

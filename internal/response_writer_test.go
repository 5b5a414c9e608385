package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/conduit/internal"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("staged status goes out with the body", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rw := internal.NewResponseWriter(rec)

		rw.SetStatus(http.StatusNotFound)
		require.False(t, rw.Written())
		require.Equal(t, http.StatusNotFound, rw.Status())

		n, err := rw.Write([]byte("no such movie"))
		require.NoError(t, err)
		require.Equal(t, 13, n)
		require.Equal(t, int64(13), rw.Size())
		require.True(t, rw.Written())
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "no such movie", rec.Body.String())
	})

	t.Run("WriteHeader wins over the staged status", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rw := internal.NewResponseWriter(rec)

		rw.SetStatus(http.StatusNotFound)
		rw.WriteHeader(http.StatusAccepted)

		require.Equal(t, http.StatusAccepted, rec.Code)
		require.Equal(t, http.StatusAccepted, rw.Status())
	})

	t.Run("header is sent once", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rw := internal.NewResponseWriter(rec)

		rw.WriteHeader(http.StatusCreated)
		rw.WriteHeader(http.StatusTeapot)
		rw.SetStatus(http.StatusTeapot)
		_, _ = rw.Write([]byte("x"))

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, http.StatusCreated, rw.Status())
	})

	t.Run("non-positive status is ignored", func(t *testing.T) {
		t.Parallel()
		rw := internal.NewResponseWriter(httptest.NewRecorder())
		rw.SetStatus(0)
		rw.SetStatus(-1)
		require.Equal(t, http.StatusOK, rw.Status())
	})

	t.Run("optional interfaces pass through", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rw := internal.NewResponseWriter(rec)

		rw.Flush()
		require.True(t, rec.Flushed)

		_, _, err := rw.Hijack()
		require.ErrorIs(t, err, http.ErrNotSupported)
		require.Same(t, rec, rw.Unwrap())
	})
}

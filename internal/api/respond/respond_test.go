package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowyourrights/cards/server/internal/model"
)

func TestWriteServiceError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: userId is required", model.ErrInvalidArgument), http.StatusBadRequest},
		{fmt.Errorf("%w: user u1", model.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: stale", model.ErrConflict), http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.code), func(t *testing.T) {
			var logs bytes.Buffer
			rr := httptest.NewRecorder()
			WriteServiceError(rr, zerolog.New(&logs), tc.err)

			require.Equal(t, tc.code, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, http.StatusText(tc.code), body.Error)
			if tc.code == http.StatusInternalServerError {
				assert.Equal(t, "Internal server error", body.Message)
				assert.Contains(t, logs.String(), "disk on fire")
			} else {
				assert.Equal(t, tc.err.Error(), body.Message)
				assert.Empty(t, logs.String())
			}
		})
	}
}

package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHttpError(t *testing.T) {
	t.Parallel()

	err := HTTPErrorNotFound("")
	require.Equal(t, 404, err.StatusCode)
	require.Equal(t, "HTTP error: 404 NOT_FOUND Not found", err.Error())
	require.Equal(t, "bad coin", HTTPErrorBadRequest("bad coin").Message)
}

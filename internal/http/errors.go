package http

import (
	"context"
	gohttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/hxuan190/swap-router/internal/aggregator"
	"github.com/hxuan190/swap-router/internal/common"
	"github.com/hxuan190/swap-router/internal/http/httputil"
	"github.com/hxuan190/swap-router/internal/pool"
	"github.com/hxuan190/swap-router/internal/services/router"
)

var badRequestErrors = []error{
	router.ErrInvalidAmount,
	router.ErrSameCoin,
	router.ErrExternalFeeTooHigh,
	router.ErrInvalidRouteLength,
	router.ErrDuplicatePool,
	pool.ErrInvalidSpec,
	pool.ErrUnsupportedProtocol,
	aggregator.ErrEmptyRequest,
}

func toHTTPError(err error) *common.HttpError {
	msg := err.Error()
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return common.HTTPErrorBadRequest(msg)
		}
	}
	switch {
	case errors.Is(err, router.ErrNoRoutesFound), errors.Is(err, router.ErrUnableToFindRoute):
		return common.HTTPErrorNotFound(msg)
	case errors.Is(err, context.DeadlineExceeded):
		return common.HTTPErrorGatewayTimeout(msg)
	case errors.Is(err, aggregator.ErrNotReady):
		return common.HTTPErrorServiceUnavailable(msg)
	default:
		return common.HTTPErrorInternalError(msg)
	}
}

func writeError(c *gin.Context, err error) {
	httpErr := toHTTPError(err)
	if httpErr.StatusCode >= gohttp.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Str("code", httpErr.Code).Msg("[http] request failed")
	}
	httputil.Error(c, httpErr.StatusCode, httpErr.Message)
}

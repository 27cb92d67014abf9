// Package statementdelivery manages delivery layer of statement exports.
package statementdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/vm-it-consulting/moneyapp/internal/domain"
	"github.com/vm-it-consulting/moneyapp/pkg/errorspkg"
	"github.com/vm-it-consulting/moneyapp/pkg/web"
)

// Service provides service layer interface needed by statement delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package statementdelivery
type Service interface {
	Export(ctx context.Context, accountID int64) error
	Read(ctx context.Context) (string, error)
}

// Handler facilitates statement delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns statement handler.
func NewHandler(ss Service) Handler {
	return Handler{service: ss}
}

func bindErrMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}

type exportRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Export handles http request to export the account's transactions to the
// shared CSV artifact.
func (h *Handler) Export(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req exportRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	if err := h.service.Export(ctx, req.ID); err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.String(http.StatusOK, "CSV export generated successfully.")
}

// Read handles http request to download the current CSV artifact verbatim.
func (h *Handler) Read(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req exportRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	content, err := h.service.Read(ctx)
	if err != nil {
		if err == domain.ErrStatementNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Header("Content-Disposition", `attachment; filename="`+domain.StatementFileName+`"`)
	gctx.Data(http.StatusOK, "text/csv", []byte(content))
}

package rest

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Gunvolt24/order_rules/internal/domain"
	"github.com/Gunvolt24/order_rules/internal/rules"
	"github.com/Gunvolt24/order_rules/internal/usecase"
)

func init() {
	// в сообщениях валидации — имена полей из json-тегов
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func errorBody(title, detail string) gin.H {
	return gin.H{"error": title, "detail": detail}
}

// writeError — отображение ошибок прикладного слоя на HTTP-ответ.
// Внутренние подробности клиенту не отдаются, только в лог.
func (h *Handler) writeError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var unknown *usecase.UnknownRulesError
	var notFound *rules.NotFoundError

	switch {
	case errors.As(err, &unknown):
		c.JSON(http.StatusBadRequest, errorBody("invalid rule name", err.Error()))
	case errors.As(err, &notFound):
		c.JSON(http.StatusBadRequest, errorBody("invalid rule name", err.Error()))
	case errors.Is(err, usecase.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, errorBody("invalid request", err.Error()))
	case errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, errorBody("order not found", notFoundDetail(err)))
	default:
		h.log.Errorf(ctx, "request failed method=%s path=%s err=%v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// notFoundDetail — текст после "order not found: ".
func notFoundDetail(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrOrderNotFound.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrOrderNotFound.Error())+2:]
	}
	return msg
}

// bindingDetail — человекочитаемое описание ошибки разбора/валидации тела.
func bindingDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "checkRulesRequest.")
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", field))
		case "min":
			if fe.Kind() == reflect.Slice {
				parts = append(parts, fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param()))
			} else {
				parts = append(parts, fmt.Sprintf("%s must be >= %s", field, fe.Param()))
			}
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed on %q", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

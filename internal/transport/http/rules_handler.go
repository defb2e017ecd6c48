package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/order_rules/internal/rules"
)

// checkRulesRequest — тело POST /rules/check/.
// Длина имени совпадает с usecase.MaxRuleNameLen.
type checkRulesRequest struct {
	OrderID *int64   `json:"order_id" binding:"required,min=1"`
	Rules   []string `json:"rules" binding:"required,min=1,dive,required,max=100"`
}

type checkRulesResponse struct {
	Passed  bool          `json:"passed"`
	Details rules.Details `json:"details"`
}

// checkRules — POST /rules/check/: 200 {passed, details} | 400 | 404 | 500.
func (h *Handler) checkRules(c *gin.Context) {
	var req checkRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf(c.Request.Context(), "invalid rule check request: %v", err)
		c.JSON(http.StatusBadRequest, errorBody("invalid request", bindingDetail(err)))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.rules.CheckRules(ctx, *req.OrderID, req.Rules)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, checkRulesResponse{Passed: res.Passed, Details: res.Details})
}

// listRules — GET /rules/: имя и описание каждого правила.
func (h *Handler) listRules(c *gin.Context) {
	infos := h.rules.ListRules(c.Request.Context())
	if infos == nil {
		infos = []rules.Info{}
	}
	c.JSON(http.StatusOK, infos)
}

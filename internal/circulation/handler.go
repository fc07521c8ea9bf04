package circulation

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

// RegisterRoutes wires the loan endpoints. member carries routes reachable
// with any valid token, admin the librarian-desk operations.
func RegisterRoutes(member gin.IRoutes, admin gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	admin.POST("/transactions", h.Issue)
	admin.DELETE("/transactions/:transaction_id", h.Return)
	admin.GET("/transactions", h.List)
	admin.GET("/transactions/overdue", h.ListOverdue)

	member.GET("/members/:member_id/transactions", h.MemberTransactions)
}

// POST /transactions
func (h *Handler) Issue(c *gin.Context) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}

	res, err := h.svc.IssueBook(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}

	c.Header("Location", "/transactions/"+res.TransactionID)
	c.JSON(http.StatusCreated, res)
}

// DELETE /transactions/:transaction_id
func (h *Handler) Return(c *gin.Context) {
	ref, ok := refDateParam(c)
	if !ok {
		return
	}

	res, err := h.svc.ReturnBook(c.Request.Context(), c.Param("transaction_id"), ref)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /transactions
func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.ListTransactions(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /transactions/overdue?on=YYYY-MM-DD
func (h *Handler) ListOverdue(c *gin.Context) {
	ref, ok := refDateParam(c)
	if !ok {
		return
	}

	res, err := h.svc.ListOverdue(c.Request.Context(), ref)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /members/:member_id/transactions
func (h *Handler) MemberTransactions(c *gin.Context) {
	memberID, err := strconv.ParseInt(c.Param("member_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "member_id must be an integer"))
		return
	}

	res, err := h.svc.MemberTransactions(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

// refDateParam reads the optional ?on=YYYY-MM-DD reference date. A false
// second return means the request was already answered with 400.
func refDateParam(c *gin.Context) (*time.Time, bool) {
	v := c.Query("on")
	if v == "" {
		return nil, true
	}
	t, err := time.ParseInLocation(DateLayout, v, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "on must be YYYY-MM-DD"))
		return nil, false
	}
	return &t, true
}

type errorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorBody(code Code, msg string) errorDTO {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func errorFromErr(err error) errorDTO {
	var msg string
	var code = CodeInternal
	if api, ok := err.(*APIError); ok {
		code, msg = api.Code, api.Message
	} else {
		msg = err.Error()
	}
	return errorBody(code, msg)
}

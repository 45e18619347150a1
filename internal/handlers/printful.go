package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/colemanmx/coleman-mx/internal/printful"
)

// PrintfulHandler exposes the merch draft-order and quote endpoints. It
// owns one Preparer and shares the client used for polling.
type PrintfulHandler struct {
	client   *printful.Client
	preparer *printful.Preparer

	// zero values take the package defaults; tests shrink these
	orderPoll      printful.PollOptions
	estimationPoll printful.PollOptions
}

func NewPrintfulHandler(client *printful.Client, cache printful.Cache) *PrintfulHandler {
	return &PrintfulHandler{
		client:   client,
		preparer: printful.NewPreparer(client, cache),
	}
}

type printfulErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HandleCreateDraftOrder handles POST /api/printful/orders - prepares the
// payload, creates a draft order and waits for its cost calculation.
func (h *PrintfulHandler) HandleCreateDraftOrder(c echo.Context) error {
	ctx := c.Request().Context()

	if !h.client.IsConfigured() {
		slog.Error("printful API key not configured")
		return c.JSON(http.StatusInternalServerError, printfulErrorResponse{Error: "Printful is not configured"})
	}

	var req printful.OrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, printfulErrorResponse{Error: "Invalid request body", Details: err.Error()})
	}
	if resp := validateOrderRequest(&req); resp != nil {
		return c.JSON(http.StatusBadRequest, *resp)
	}
	if req.ExternalID == "" {
		req.ExternalID = uuid.NewString()
	}

	payload, err := h.preparer.PrepareOrder(ctx, &req)
	if err != nil {
		return writePrintfulError(c, "Failed to prepare order", err)
	}

	draft, err := h.client.CreateOrder(ctx, payload, false)
	if err != nil {
		return writePrintfulError(c, "Failed to create draft order", err)
	}

	orderID, _ := draft["id"].(string)
	if orderID == "" {
		if n, ok := draft["id"].(float64); ok {
			orderID = formatOrderID(n)
		}
	}
	if orderID == "" {
		slog.Error("draft order response carries no id")
		return c.JSON(http.StatusBadGateway, printfulErrorResponse{Error: "Upstream returned an unusable draft order"})
	}

	order, err := h.client.WaitForOrderCosts(ctx, orderID, h.orderPoll)
	if err != nil {
		return writePrintfulError(c, "Order cost calculation did not complete", err)
	}

	slog.Info("draft order costs calculated", "order_id", orderID)
	return c.JSON(http.StatusOK, map[string]any{
		"order":        order,
		"draft":        draft,
		"costs":        order["costs"],
		"retail_costs": order["retail_costs"],
	})
}

// HandleConfirmOrder handles POST /api/printful/orders/:id/confirm.
func (h *PrintfulHandler) HandleConfirmOrder(c echo.Context) error {
	ctx := c.Request().Context()

	if !h.client.IsConfigured() {
		slog.Error("printful API key not configured")
		return c.JSON(http.StatusInternalServerError, printfulErrorResponse{Error: "Printful is not configured"})
	}

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, printfulErrorResponse{Error: "Order ID is required"})
	}

	order, err := h.client.ConfirmOrder(ctx, orderID)
	if err != nil {
		return writePrintfulError(c, "Failed to confirm order", err)
	}

	slog.Info("confirmed printful order", "order_id", orderID)
	return c.JSON(http.StatusOK, map[string]any{"order": order})
}

// HandleCreateQuote handles POST /api/printful/quotes - prepares the
// payload, starts an estimation task and waits for its completion.
func (h *PrintfulHandler) HandleCreateQuote(c echo.Context) error {
	ctx := c.Request().Context()

	if !h.client.IsConfigured() {
		slog.Error("printful API key not configured")
		return c.JSON(http.StatusInternalServerError, printfulErrorResponse{Error: "Printful is not configured"})
	}

	var req printful.OrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, printfulErrorResponse{Error: "Invalid request body", Details: err.Error()})
	}
	if resp := validateOrderRequest(&req); resp != nil {
		return c.JSON(http.StatusBadRequest, *resp)
	}

	payload, err := h.preparer.PrepareOrder(ctx, &req)
	if err != nil {
		return writePrintfulError(c, "Failed to prepare quote", err)
	}

	created, err := h.client.CreateEstimationTask(ctx, payload)
	if err != nil {
		return writePrintfulError(c, "Failed to create estimation task", err)
	}

	taskID, _ := created["id"].(string)
	if taskID == "" {
		if n, ok := created["id"].(float64); ok {
			taskID = formatOrderID(n)
		}
	}
	if taskID == "" {
		slog.Error("estimation task response carries no id")
		return c.JSON(http.StatusBadGateway, printfulErrorResponse{Error: "Upstream returned an unusable estimation task"})
	}

	task, err := h.client.WaitForEstimation(ctx, taskID, h.estimationPoll)
	if err != nil {
		return writePrintfulError(c, "Quote estimation did not complete", err)
	}

	slog.Info("quote estimation completed", "task_id", taskID)
	return c.JSON(http.StatusOK, map[string]any{
		"costs":        task["costs"],
		"retail_costs": task["retail_costs"],
	})
}

// formatOrderID renders a numeric upstream id the way the path segment
// expects it.
func formatOrderID(n float64) string {
	return strconv.FormatInt(int64(n), 10)
}

func validateOrderRequest(req *printful.OrderRequest) *printfulErrorResponse {
	if len(req.Recipient) == 0 || string(req.Recipient) == "null" || string(req.Recipient) == "{}" {
		return &printfulErrorResponse{Error: "Recipient is required"}
	}
	if len(req.Items) == 0 && len(req.OrderItems) == 0 {
		return &printfulErrorResponse{Error: "At least one order item is required"}
	}
	return nil
}

// writePrintfulError maps the printful package's error taxonomy onto
// HTTP statuses: upstream errors mirror their own status, timeouts read
// as 504, failed calculations and bad upstream bodies as 502, and
// preparation failures as a plain 500.
func writePrintfulError(c echo.Context, message string, err error) error {
	var apiErr *printful.APIError
	var timeoutErr *printful.TimeoutError
	var calcErr *printful.CalculationError
	var prepErr *printful.PrepareError

	switch {
	case errors.As(err, &apiErr):
		status := apiErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		slog.Error("printful API call failed", "status", apiErr.StatusCode, "error", err)
		return c.JSON(status, printfulErrorResponse{Error: message, Details: apiErr.Body})
	case errors.As(err, &timeoutErr):
		slog.Warn("printful polling timed out", "attempts", timeoutErr.Attempts, "timeout", timeoutErr.Timeout)
		return c.JSON(http.StatusGatewayTimeout, printfulErrorResponse{Error: message, Details: err.Error()})
	case errors.As(err, &calcErr):
		slog.Error("printful calculation failed", "error", err)
		return c.JSON(http.StatusBadGateway, printfulErrorResponse{Error: message, Details: calcErr.Body})
	case errors.As(err, &prepErr):
		slog.Error("order preparation failed", "variant_id", prepErr.VariantID, "error", err)
		return c.JSON(http.StatusInternalServerError, printfulErrorResponse{Error: message, Details: err.Error()})
	default:
		slog.Error("printful request failed", "error", err)
		return c.JSON(http.StatusInternalServerError, printfulErrorResponse{Error: message, Details: err.Error()})
	}
}

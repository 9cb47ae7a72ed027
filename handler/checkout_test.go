package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	_ = json.Unmarshal(body, &decoded)
	return resp, decoded
}

func checkoutPayload(eventID uint, ticketTypeID uint, quantity int, amount int64) model.CheckoutInput {
	return model.CheckoutInput{
		EventID: eventID,
		Tickets: []model.TicketLine{
			{TicketTypeID: ticketTypeID, Quantity: quantity, AttendeeName: "Ada Obi", AttendeeEmail: "ada@example.com"},
		},
		Amount:        amount,
		CustomerEmail: "ada@example.com",
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	db := useTestDB(t)
	gateway := newGatewayStub(t)
	app := setupApp()

	event, tt := seedEvent(t, db, "Happy Event", 500000, utils.Ptr(10))

	// ₦5,000 ticket → total payable 517,500 kobo
	resp, body := postJSON(t, app, "/api/v1/checkout", checkoutPayload(event.ID, tt.ID, 1, 517500))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, true, body["success"])
	reference, _ := body["reference"].(string)
	require.NotEmpty(t, reference)
	assert.Contains(t, body["authorizationUrl"], reference)
	assert.Equal(t, 1, gateway.initCalls)

	// exactly one PENDING payment, zero tickets minted
	var payment model.Payment
	require.NoError(t, db.Where("reference = ?", reference).First(&payment).Error)
	assert.Equal(t, model.PaymentPending, payment.Status)
	assert.Equal(t, int64(517500), payment.Amount)
	assert.Equal(t, int64(35000), payment.PlatformAmount)
	assert.Equal(t, int64(465000), payment.OrganizerAmount)

	var ticketCount int64
	db.Model(&model.Ticket{}).Count(&ticketCount)
	assert.Zero(t, ticketCount)

	// the snapshot froze prices and the breakdown
	var snapshot model.PaymentSnapshot
	require.NoError(t, json.Unmarshal([]byte(payment.Metadata), &snapshot))
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, int64(500000), snapshot.Lines[0].UnitPrice)
	assert.Equal(t, int64(517500), snapshot.Breakdown.TotalAmount)
}

func TestCheckoutAmountWithinTolerance(t *testing.T) {
	db := useTestDB(t)
	newGatewayStub(t)
	app := setupApp()

	event, tt := seedEvent(t, db, "Tolerance Event", 500000, utils.Ptr(10))

	// off by exactly 100 kobo is still accepted
	resp, _ := postJSON(t, app, "/api/v1/checkout", checkoutPayload(event.ID, tt.ID, 1, 517600))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCheckoutAmountMismatchRejected(t *testing.T) {
	db := useTestDB(t)
	gateway := newGatewayStub(t)
	app := setupApp()

	event, tt := seedEvent(t, db, "Mismatch Event", 500000, utils.Ptr(10))

	resp, body := postJSON(t, app, "/api/v1/checkout", checkoutPayload(event.ID, tt.ID, 1, 517601))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	// rejected before any payment row or gateway call
	var count int64
	db.Model(&model.Payment{}).Count(&count)
	assert.Zero(t, count)
	assert.Zero(t, gateway.initCalls)
}

func TestCheckoutUnknownEvent(t *testing.T) {
	useTestDB(t)
	newGatewayStub(t)
	app := setupApp()

	resp, _ := postJSON(t, app, "/api/v1/checkout", checkoutPayload(999, 1, 1, 517500))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckoutForeignTicketTypeRejected(t *testing.T) {
	db := useTestDB(t)
	newGatewayStub(t)
	app := setupApp()

	event, _ := seedEvent(t, db, "Event A", 500000, utils.Ptr(10))
	_, otherType := seedEvent(t, db, "Event B", 300000, utils.Ptr(10))

	resp, _ := postJSON(t, app, "/api/v1/checkout", checkoutPayload(event.ID, otherType.ID, 1, 309000))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutInsufficientInventoryRejected(t *testing.T) {
	db := useTestDB(t)
	gateway := newGatewayStub(t)
	app := setupApp()

	event, tt := seedEvent(t, db, "Small Event", 500000, utils.Ptr(2))

	payload := checkoutPayload(event.ID, tt.ID, 3, 1532500)
	resp, body := postJSON(t, app, "/api/v1/checkout", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "General")
	assert.Zero(t, gateway.initCalls)
}

func TestCheckoutGatewayRejectionCleansUp(t *testing.T) {
	db := useTestDB(t)
	gateway := newGatewayStub(t)
	gateway.rejectInit = true
	app := setupApp()

	event, tt := seedEvent(t, db, "Reject Event", 500000, utils.Ptr(10))

	resp, body := postJSON(t, app, "/api/v1/checkout", checkoutPayload(event.ID, tt.ID, 1, 517500))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	// the compensating delete removed the orphaned PENDING row; no ticket
	// for that reference can ever exist
	var paymentCount, ticketCount int64
	db.Model(&model.Payment{}).Count(&paymentCount)
	db.Model(&model.Ticket{}).Count(&ticketCount)
	assert.Zero(t, paymentCount)
	assert.Zero(t, ticketCount)
}

func TestCheckoutMalformedBodyRejected(t *testing.T) {
	useTestDB(t)
	newGatewayStub(t)
	app := setupApp()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader([]byte(`{"eventId":`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/validate"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testGatewaySecret = "sk_test_secret"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// a second pool connection would see a fresh empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Event{}, &model.TicketType{}, &model.Payment{}, &model.Ticket{},
	))
	return db
}

func seedEvent(t *testing.T, db *gorm.DB, title string, price int64, capacity *int) (model.Event, model.TicketType) {
	t.Helper()

	start := time.Now().AddDate(0, 1, 0)
	event := model.Event{
		Title:     title,
		Slug:      slug.Make(title),
		Venue:     "Test Venue",
		StartTime: start,
		EndTime:   start.Add(4 * time.Hour),
		Status:    model.EventPublished,
		TicketTypes: []model.TicketType{
			{Name: "General", Price: price, Capacity: capacity},
		},
	}
	require.NoError(t, db.Create(&event).Error)
	return event, event.TicketTypes[0]
}

// openPayment creates a PENDING payment with the same snapshot the checkout
// orchestrator would have written.
func openPayment(t *testing.T, db *gorm.DB, event model.Event, tt model.TicketType, quantity int) model.Payment {
	t.Helper()

	subtotal := tt.Price * int64(quantity)
	breakdown := helper.ComputeBreakdown(subtotal)
	snapshot := model.PaymentSnapshot{
		Lines: []model.SnapshotLine{{
			TicketTypeID: tt.ID,
			Quantity:     quantity,
			UnitPrice:    tt.Price,
			AttendeeName: "Ada Obi",
		}},
		Breakdown: breakdown,
	}
	metadata, err := json.Marshal(snapshot)
	require.NoError(t, err)

	payment := model.Payment{
		Reference:       helper.GeneratePaymentReference(),
		EventID:         event.ID,
		Amount:          breakdown.TotalAmount,
		PlatformAmount:  breakdown.PlatformAmount,
		OrganizerAmount: breakdown.OrganizerAmount,
		CustomerEmail:   "buyer@example.com",
		Metadata:        string(metadata),
	}
	require.NoError(t, CreatePaymentRecord(db, &payment))
	return payment
}

func setupApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/v1/checkout", validate.Checkout(), Checkout)
	app.Get("/api/v1/payments/verify", VerifyPayment)
	app.Get("/api/v1/purchases/:reference", GetPurchase)
	app.Post("/paystack/webhook", PaystackWebhook)
	return app
}

// gatewayStub stands in for the Paystack HTTP boundary.
type gatewayStub struct {
	srv          *httptest.Server
	initCalls    int
	verifyCalls  int
	bankCalls    int
	rejectInit   bool
	verifyStatus string
	failVerify   bool
}

func newGatewayStub(t *testing.T) *gatewayStub {
	t.Helper()

	g := &gatewayStub{verifyStatus: "success"}
	g.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/transaction/initialize":
			g.initCalls++
			if g.rejectInit {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"status":false,"message":"Invalid amount"}`)
				return
			}
			var req model.InitializeRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			fmt.Fprintf(w, `{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.example/%s","access_code":"AC_%s","reference":"%s"}}`,
				req.Reference, req.Reference, req.Reference)

		case strings.HasPrefix(r.URL.Path, "/transaction/verify/"):
			g.verifyCalls++
			if g.failVerify {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"status":false,"message":"gateway down"}`)
				return
			}
			ref := strings.TrimPrefix(r.URL.Path, "/transaction/verify/")
			fmt.Fprintf(w, `{"status":true,"message":"Verification successful","data":{"status":"%s","reference":"%s","amount":0,"currency":"NGN"}}`,
				g.verifyStatus, ref)

		case r.URL.Path == "/bank":
			g.bankCalls++
			fmt.Fprint(w, `{"status":true,"message":"Banks retrieved","data":[{"name":"Guaranty Trust Bank","code":"058","slug":"gtbank"},{"name":"Zenith Bank","code":"057","slug":"zenith-bank"}]}`)

		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"status":false,"message":"not found"}`)
		}
	}))
	t.Cleanup(g.srv.Close)

	t.Setenv("PAYSTACK_BASE_URL", g.srv.URL)
	t.Setenv("PAYSTACK_SECRET_KEY", testGatewaySecret)
	return g
}

func useTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := setupTestDB(t)
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

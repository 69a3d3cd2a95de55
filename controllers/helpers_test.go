package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/smtp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Kariqs/maxtech-api/feed"
	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/internal/testutil"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/Kariqs/maxtech-api/routes"
	"github.com/Kariqs/maxtech-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "controller-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type mail struct {
	to  []string
	msg string
}

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	mails  []mail
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{t: t, db: testutil.NewDB(t)}

	prevDB, prevCfg := initializers.DB, initializers.Cfg
	prevOrders, prevFeed, prevUploader := initializers.Orders, initializers.Feed, initializers.Uploader
	prevDeliver := utils.Deliver

	initializers.DB = env.db
	initializers.Cfg = initializers.Config{
		JWTSecret:    testSecret,
		FrontendURL:  "https://shop.test",
		DetailsEmail: "orders@maxtech.in",
	}
	initializers.Feed = feed.NewHub()
	initializers.Orders = nil
	initializers.Uploader = nil

	utils.ConfigureMail(utils.MailConfig{SMTPAddress: "smtp.test:587", SMTPHost: "smtp.test", From: "shop@maxtech.in"})
	utils.Deliver = func(_ string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		env.mails = append(env.mails, mail{to: to, msg: string(msg)})
		return nil
	}

	t.Cleanup(func() {
		initializers.DB, initializers.Cfg = prevDB, prevCfg
		initializers.Orders, initializers.Feed, initializers.Uploader = prevOrders, prevFeed, prevUploader
		utils.Deliver = prevDeliver
		utils.ConfigureMail(utils.MailConfig{})
	})

	env.router = gin.New()
	routes.Register(env.router)
	return env
}

// user stores an activated account with role and returns it with a session token.
func (e *testEnv) user(name, role string) (models.User, string) {
	e.t.Helper()
	u := models.User{
		Name:             name,
		Email:            strings.ToLower(name) + "@example.com",
		Role:             role,
		AccountActivated: true,
	}
	testutil.Create(e.t, e.db, &u)
	tok, err := middlewares.IssueToken(u, testSecret, time.Now())
	require.NoError(e.t, err)
	return u, tok
}

func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Product, models.Accessory, models.Part) {
	t.Helper()
	product := models.Product{
		Name:         "Zenbook 14",
		Brand:        "Asus",
		Description:  "OLED ultrabook",
		ActualPrice:  decimal.NewFromInt(62000),
		SellingPrice: decimal.NewFromInt(54999),
		Stock:        5,
		Categories:   []models.Category{{Name: "Laptops"}},
	}
	accessory := models.Accessory{
		Name:         "MX Master 3S",
		Brand:        "Logitech",
		Description:  "Wireless mouse",
		ActualPrice:  decimal.NewFromInt(10995),
		SellingPrice: decimal.NewFromInt(8995),
		Stock:        10,
	}
	part := models.Part{Name: "RTX 4070", Category: "GPU", Brand: "Nvidia", Price: decimal.NewFromInt(58000), Stock: 2}
	testutil.Create(t, db, &product, &accessory, &part)
	return product, accessory, part
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func jsonUnmarshal(raw []byte, v any) error {
	return json.Unmarshal(raw, v)
}

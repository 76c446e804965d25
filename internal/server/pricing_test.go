package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/attestra/attestra/internal/config"
	pricingdomain "github.com/attestra/attestra/internal/pricing/domain"
	quotedomain "github.com/attestra/attestra/internal/quote/domain"
	quoterepository "github.com/attestra/attestra/internal/quote/repository"
	quoteservice "github.com/attestra/attestra/internal/quote/service"
	"github.com/attestra/attestra/internal/reference"
	referencedomain "github.com/attestra/attestra/internal/reference/domain"
	"github.com/attestra/attestra/internal/seed"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&referencedomain.Language{},
		&referencedomain.CertificationType{},
		&referencedomain.DeliveryOption{},
		&referencedomain.TaxRate{},
		&quotedomain.Quote{},
		&quotedomain.Document{},
		&quotedomain.DocumentCertification{},
		&quotedomain.Page{},
		&quotedomain.QuoteAdjustment{},
	))
	require.NoError(t, seed.EnsureReferenceData(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	pricingCfg, err := config.DefaultPricingSettings().ToDomain()
	require.NoError(t, err)
	holder := config.NewStaticPricingConfigHolder(pricingCfg)

	svc := quoteservice.New(quoteservice.Params{
		DB:      conn,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    quoterepository.Provide(),
		RefRepo: reference.NewRepository(conn),
		Pricing: holder,
	})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin:      engine,
		Cfg:      config.Config{},
		DB:       conn,
		QuoteSvc: svc,
		Refrepo:  reference.NewRepository(conn),
		Pricing:  holder,
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func TestPreviewQuote_ReturnsTotals(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/v1/pricing/preview", quotedomain.PreviewRequest{
		TargetLanguageCode: "es",
		Turnaround:         pricingdomain.TurnaroundStandard,
		Documents: []quotedomain.DocumentRequest{
			{
				Certifications: []string{"certified"},
				Pages: []quotedomain.PageRequest{
					{WordCount: 500, Complexity: pricingdomain.ComplexityMedium},
				},
			},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data pricingdomain.QuoteTotals `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// 2.6 pages at 65 = 169 plus the 10.00 certification.
	assert.Equal(t, "179", resp.Data.Total.String())
	assert.Equal(t, "169", resp.Data.Subtotal.Sub(resp.Data.Documents[0].CertificationCost).String())
}

func TestPreviewQuote_ValidationErrorPayload(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/v1/pricing/preview", quotedomain.PreviewRequest{
		TargetLanguageCode: "es",
		Turnaround:         pricingdomain.TurnaroundStandard,
		Documents: []quotedomain.DocumentRequest{
			{
				Pages: []quotedomain.PageRequest{
					{WordCount: -5, Complexity: pricingdomain.ComplexityEasy},
				},
			},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	require.Len(t, resp.Error.Errors, 1)
	assert.Equal(t, "negative_word_count", resp.Error.Errors[0].Code)
	assert.NotEmpty(t, resp.Error.Errors[0].Field)
}

func TestPreviewQuote_UnknownLanguageIsConfigurationError(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/v1/pricing/preview", quotedomain.PreviewRequest{
		TargetLanguageCode: "xx",
		Turnaround:         pricingdomain.TurnaroundStandard,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "configuration_error", resp.Error.Type)
}

func TestGetPricingConfig(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/v1/pricing/config", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "65", resp.Data["base_rate"])
	assert.EqualValues(t, 225, resp.Data["words_per_page"])
}

func TestGetQuote_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/v1/quotes/12345", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Error.Type)
}

func TestQuoteLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/v1/quotes", quotedomain.CreateRequest{
		QuoteNumber:        "Q-HTTP-1",
		TargetLanguageCode: "es",
		Documents: []quotedomain.DocumentRequest{
			{
				Pages: []quotedomain.PageRequest{
					{WordCount: 450, Complexity: pricingdomain.ComplexityEasy},
				},
			},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data quotedomain.Response `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "130", created.Data.Totals.Subtotal.String())

	id := created.Data.Quote.ID.String()
	rec = doJSON(t, s, http.MethodPut, "/v1/quotes/"+id+"/turnaround", quotedomain.TurnaroundRequest{
		Tier: pricingdomain.TurnaroundRush,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated struct {
		Data quotedomain.Response `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "39", updated.Data.Totals.RushFee.String())
	assert.Equal(t, "169", updated.Data.Totals.Total.String())
}

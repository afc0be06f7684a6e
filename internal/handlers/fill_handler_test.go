package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/formpilot/autofill-backend/internal/database"
	"github.com/formpilot/autofill-backend/internal/models"
	"github.com/formpilot/autofill-backend/internal/services"
)

type fakeGenerator struct {
	resp  string
	err   error
	calls int
}

func (g *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.calls++
	return g.resp, g.err
}

func newTestRouter(t *testing.T, gen services.Generator) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	identities := services.NewIdentityService(db)
	profiles := services.NewProfileService(db)
	autofill := services.NewAutofillService(db, identities, profiles, gen, logger,
		5*time.Second, "Placement")

	r := gin.New()
	r.GET("/health", HealthCheck)
	r.POST("/auth/google", NewAuthHandler(identities).GoogleAuth)
	r.POST("/fill", NewFillHandler(autofill).Fill)
	return r, db
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func seedFullProfile(t *testing.T, db *gorm.DB, email string) {
	t.Helper()
	profile := models.UserProfile{Email: email, ProfileName: "Placement", IsActive: true}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	skills := []models.ProfileSkill{
		{ProfileID: profile.ID, Category: "Languages", Skill: "Python"},
		{ProfileID: profile.ID, Category: "Languages", Skill: "C++"},
	}
	if err := db.Create(&skills).Error; err != nil {
		t.Fatalf("seed skills: %v", err)
	}
}

func TestGoogleAuthIdempotent(t *testing.T) {
	r, db := newTestRouter(t, &fakeGenerator{})

	first := postJSON(t, r, "/auth/google", gin.H{"email": "a@b.com", "name": "A", "picture": "p1"})
	if first.Code != http.StatusOK {
		t.Fatalf("first login status = %d", first.Code)
	}
	if ok, _ := decodeBody(t, first)["ok"].(bool); !ok {
		t.Error("expected ok: true")
	}

	second := postJSON(t, r, "/auth/google", gin.H{"email": "a@b.com", "name": "B", "picture": "p2"})
	if second.Code != http.StatusOK {
		t.Fatalf("second login status = %d", second.Code)
	}

	var count int64
	db.Model(&models.Identity{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one identity row, got %d", count)
	}
	var identity models.Identity
	db.Where("email = ?", "a@b.com").First(&identity)
	if identity.Name != "B" || identity.Picture != "p2" {
		t.Errorf("latest login values not kept: %+v", identity)
	}
}

func TestGoogleAuthMissingEmail(t *testing.T) {
	r, _ := newTestRouter(t, &fakeGenerator{})

	w := postJSON(t, r, "/auth/google", gin.H{"name": "A"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing email, got %d", w.Code)
	}
}

func TestFillUserNotFound(t *testing.T) {
	r, _ := newTestRouter(t, &fakeGenerator{})

	w := postJSON(t, r, "/fill", gin.H{
		"user":   gin.H{"email": "nobody@example.com", "name": "N"},
		"fields": []gin.H{{"id": "f1", "type": "text"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decodeBody(t, w)["error"]; got != "User not found" {
		t.Errorf("error = %v", got)
	}
}

func TestFillProfileNotFound(t *testing.T) {
	gen := &fakeGenerator{}
	r, db := newTestRouter(t, gen)
	db.Create(&models.Identity{Email: "a@b.com", Name: "A", LastLogin: time.Now().UTC()})

	w := postJSON(t, r, "/fill", gin.H{
		"user":   gin.H{"email": "a@b.com", "name": "A"},
		"fields": []gin.H{{"id": "f1", "type": "text"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decodeBody(t, w)["error"]; got != "Profile not found" {
		t.Errorf("error = %v", got)
	}
	if gen.calls != 0 {
		t.Error("generation must not run without a profile")
	}
}

func TestFillSkillsJoined(t *testing.T) {
	gen := &fakeGenerator{resp: `[{"id": "f1", "name": "", "value": "Python, C++"}]`}
	r, db := newTestRouter(t, gen)
	db.Create(&models.Identity{Email: "a@b.com", Name: "A", LastLogin: time.Now().UTC()})
	seedFullProfile(t, db, "a@b.com")

	w := postJSON(t, r, "/fill", gin.H{
		"user":   gin.H{"email": "a@b.com", "name": "A"},
		"fields": []gin.H{{"id": "f1", "type": "text", "label": "Skills"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	body := decodeBody(t, w)
	values, ok := body["values"].([]any)
	if !ok || len(values) != 1 {
		t.Fatalf("expected one value, body = %v", body)
	}
	value := values[0].(map[string]any)
	if value["id"] != "f1" || value["value"] != "Python, C++" {
		t.Errorf("skills must come back as one comma-joined string: %v", value)
	}
}

func TestFillParseFailureDiagnostics(t *testing.T) {
	gen := &fakeGenerator{resp: "I could not produce JSON"}
	r, db := newTestRouter(t, gen)
	db.Create(&models.Identity{Email: "a@b.com", Name: "A", LastLogin: time.Now().UTC()})
	seedFullProfile(t, db, "a@b.com")

	w := postJSON(t, r, "/fill", gin.H{
		"user":   gin.H{"email": "a@b.com", "name": "A"},
		"fields": []gin.H{{"id": "f1"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["error"] != "Gemini parse failed" {
		t.Errorf("error = %v", body["error"])
	}
	if body["raw"] != gen.resp {
		t.Errorf("raw = %v", body["raw"])
	}
	if body["exception"] == nil || body["exception"] == "" {
		t.Error("expected an exception message")
	}
}

func TestFillInvalidBody(t *testing.T) {
	r, _ := newTestRouter(t, &fakeGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/fill", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, &fakeGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/formpilot/autofill-backend/internal/dtos"
	"github.com/formpilot/autofill-backend/internal/models"
)

var (
	// ErrUserNotFound means the email never logged in.
	ErrUserNotFound = errors.New("user not found")
	// ErrProfileNotFound means no profile row exists for the email under
	// the requested variant.
	ErrProfileNotFound = errors.New("profile not found")
)

// ParseError wraps a model response that was not valid JSON after
// fence-stripping. Raw carries the full response text so the caller can
// surface it as a diagnostic.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string { return "parse model output: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// Generator is the single synchronous call into the generation provider.
// *LLMService satisfies it in production; tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AutofillService runs the fill pipeline: identity check, profile fetch,
// prompt render, generation, parse, sanitize, usage log.
type AutofillService struct {
	Identities *IdentityService
	Profiles   *ProfileService
	Generator  Generator
	DB         *gorm.DB
	Logger     *slog.Logger

	// Timeout bounds the generation call.
	Timeout time.Duration
	// DefaultVariant is used when the request names no profile variant.
	DefaultVariant string
}

func NewAutofillService(db *gorm.DB, identities *IdentityService, profiles *ProfileService,
	gen Generator, logger *slog.Logger, timeout time.Duration, defaultVariant string) *AutofillService {
	return &AutofillService{
		Identities:     identities,
		Profiles:       profiles,
		Generator:      gen,
		DB:             db,
		Logger:         logger,
		Timeout:        timeout,
		DefaultVariant: defaultVariant,
	}
}

// Fill maps the profile for user onto fields and returns one value per
// input field. Requests are stateless; the only side effect is the
// best-effort usage-log append.
func (s *AutofillService) Fill(ctx context.Context, user *dtos.GoogleUser, fields []dtos.FormField, variant string) ([]dtos.FieldValue, error) {
	if variant == "" {
		variant = s.DefaultVariant
	}

	exists, err := s.Identities.Exists(user.Email)
	if err != nil {
		return nil, fmt.Errorf("check identity: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	profile, err := s.Profiles.FetchProfile(user.Email, variant)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	prompt, err := buildFillPrompt(profile, fields)
	if err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	raw, err := s.Generator.Generate(genCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	parsed, err := parseFieldValues(raw)
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	values := alignResults(fields, parsed)
	sanitizeValues(fields, values)

	s.logUsage(user.Email, values)

	return values, nil
}

// logUsage appends an autofill_logs row. Failures are logged and swallowed:
// the audit table must not become a request-path dependency.
func (s *AutofillService) logUsage(email string, values []dtos.FieldValue) {
	payload, err := json.Marshal(values)
	if err != nil {
		s.Logger.Warn("usage log marshal failed", "email", email, "error", err)
		return
	}
	entry := models.AutofillLog{
		Email:     email,
		Fields:    datatypes.JSON(payload),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		s.Logger.Warn("usage log write failed", "email", email, "error", err)
	}
}

// extractJSON strips a markdown code fence (with or without a "json" tag)
// from the model response.
func extractJSON(text string) string {
	clean := strings.TrimSpace(text)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	return strings.TrimSpace(clean)
}

func parseFieldValues(raw string) ([]dtos.FieldValue, error) {
	var values []dtos.FieldValue
	if err := json.Unmarshal([]byte(extractJSON(raw)), &values); err != nil {
		return nil, err
	}
	return values, nil
}

// alignResults pairs the parsed results back to the input fields: exactly
// one result per input, in input order, id and name copied from the
// descriptor. A field the model skipped gets ""; extra results are dropped.
func alignResults(fields []dtos.FormField, parsed []dtos.FieldValue) []dtos.FieldValue {
	values := make([]dtos.FieldValue, len(fields))
	used := make([]bool, len(parsed))
	for i, f := range fields {
		values[i] = dtos.FieldValue{ID: f.ID, Name: f.Name}
		for j, p := range parsed {
			if used[j] {
				continue
			}
			if (f.ID != "" && p.ID == f.ID) || (f.ID == "" && f.Name != "" && p.Name == f.Name) {
				values[i].Value = p.Value
				used[j] = true
				break
			}
		}
	}
	// Descriptors with neither id nor name fall back to positional pairing.
	for i, f := range fields {
		if f.ID == "" && f.Name == "" && i < len(parsed) && !used[i] {
			values[i].Value = parsed[i].Value
			used[i] = true
		}
	}
	return values
}

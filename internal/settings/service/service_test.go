package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"rentcar-backend/internal/settings/repository"
	"rentcar-backend/platform/apperr"
	"rentcar-backend/platform/logger"
)

type stubSettings struct {
	values map[string]string
	err    error
}

func (r *stubSettings) Get(ctx context.Context, key string) (repository.Setting, error) {
	if r.err != nil {
		return repository.Setting{}, r.err
	}
	value, ok := r.values[key]
	if !ok {
		return repository.Setting{}, repository.ErrNotFound
	}
	return repository.Setting{Key: key, Value: value}, nil
}

func (r *stubSettings) List(ctx context.Context) ([]repository.Setting, error) {
	out := make([]repository.Setting, 0, len(r.values))
	for k, v := range r.values {
		out = append(out, repository.Setting{Key: k, Value: v})
	}
	return out, nil
}

func (r *stubSettings) Upsert(ctx context.Context, key, value string) error {
	r.values[key] = value
	return nil
}

type stubWhatsAppConfig struct {
	number string
}

func (c stubWhatsAppConfig) GetWhatsAppNumber() string   { return c.number }
func (c stubWhatsAppConfig) GetWhatsAppURL() string      { return "" }
func (c stubWhatsAppConfig) GetWhatsAppKey() string      { return "" }
func (c stubWhatsAppConfig) GetWhatsAppDeviceID() string { return "" }

func TestWhatsAppNumberPrefersSetting(t *testing.T) {
	repo := &stubSettings{values: map[string]string{WhatsAppNumberKey: "+41 79 111 22 33"}}
	svc := New(repo, stubWhatsAppConfig{number: "+41790000000"}, nil, logger.New("development"))

	if got := svc.WhatsAppNumber(context.Background()); got != "+41 79 111 22 33" {
		t.Fatalf("expected setting value, got %q", got)
	}
}

func TestWhatsAppNumberFallsBackToConfig(t *testing.T) {
	cases := map[string]*stubSettings{
		"missing": {values: map[string]string{}},
		"empty":   {values: map[string]string{WhatsAppNumberKey: ""}},
		"error":   {values: map[string]string{}, err: errors.New("connection refused")},
	}

	for name, repo := range cases {
		svc := New(repo, stubWhatsAppConfig{number: "+41790000000"}, nil, logger.New("development"))
		if got := svc.WhatsAppNumber(context.Background()); got != "+41790000000" {
			t.Fatalf("%s: expected config fallback, got %q", name, got)
		}
	}
}

func TestUpsertRejectsBadKey(t *testing.T) {
	repo := &stubSettings{values: map[string]string{}}
	svc := New(repo, stubWhatsAppConfig{}, nil, logger.New("development"))

	_, err := svc.Upsert(context.Background(), uuid.New(), "Bad Key!", "value")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpsertRoundTrips(t *testing.T) {
	repo := &stubSettings{values: map[string]string{}}
	svc := New(repo, stubWhatsAppConfig{}, nil, logger.New("development"))

	setting, err := svc.Upsert(context.Background(), uuid.New(), "company_name", "RentCar SA")
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if setting.Value != "RentCar SA" {
		t.Fatalf("expected stored value, got %q", setting.Value)
	}
}

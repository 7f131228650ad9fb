package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gamestore-zarzis/backend/internal/config"
	"github.com/gamestore-zarzis/backend/internal/domain"
	"github.com/gamestore-zarzis/backend/internal/service"
	"github.com/gamestore-zarzis/backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type sendCall struct {
	identifier string
	channel    domain.Channel
}

type fakeVerification struct {
	sendErr   error
	verifyErr error
	sends     []sendCall
	verifies  []string
}

func (f *fakeVerification) Send(_ context.Context, identifier string, channel domain.Channel) error {
	f.sends = append(f.sends, sendCall{identifier: identifier, channel: channel})
	return f.sendErr
}

func (f *fakeVerification) Issue(context.Context, string) (*domain.VerificationCode, error) {
	return nil, errors.New("not used")
}

func (f *fakeVerification) Verify(_ context.Context, identifier, _ string) error {
	f.verifies = append(f.verifies, identifier)
	return f.verifyErr
}

type fakeSettings struct {
	enabled bool
	getErr  error
	setErr  error
}

func (f *fakeSettings) SMSEnabled(context.Context) (bool, error) {
	if f.getErr != nil {
		return service.DefaultSMSEnabled, f.getErr
	}
	return f.enabled, nil
}

func (f *fakeSettings) SetSMSEnabled(_ context.Context, enabled bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.enabled = enabled
	return nil
}

type fakeMaintenance struct {
	deleted int64
	err     error
}

func (f *fakeMaintenance) CleanupVerificationCodes(context.Context) (int64, error) {
	return f.deleted, f.err
}

type fakeAdmins struct {
	owners map[uuid.UUID]bool
	err    error
}

func (f *fakeAdmins) Authorize(_ context.Context, userID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	if !f.owners[userID] {
		return service.ErrForbidden
	}
	return nil
}

type fakeTokens map[string]uuid.UUID

func (f fakeTokens) Parse(token string) (uuid.UUID, error) {
	id, ok := f[token]
	if !ok {
		return uuid.Nil, errors.New("bad token")
	}
	return id, nil
}

type testEnv struct {
	verification *fakeVerification
	settings     *fakeSettings
	maintenance  *fakeMaintenance
	admins       *fakeAdmins
	ownerID      uuid.UUID
	staffID      uuid.UUID
	router       *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		verification: &fakeVerification{},
		settings:     &fakeSettings{enabled: true},
		maintenance:  &fakeMaintenance{},
		ownerID:      uuid.New(),
		staffID:      uuid.New(),
	}
	env.admins = &fakeAdmins{owners: map[uuid.UUID]bool{env.ownerID: true}}

	services := &service.Services{
		Verification: env.verification,
		Settings:     env.settings,
		Maintenance:  env.maintenance,
		Admins:       env.admins,
	}
	tokens := fakeTokens{"owner-token": env.ownerID, "staff-token": env.staffID}

	cfg := &config.Config{}
	cfg.Limiter.TTL = time.Minute

	validator.RegisterGinValidator()
	router := gin.New()
	h := NewHandler(services, tokens, cfg)
	h.InitRoot(router)
	h.Init(router.Group("/api"))
	env.router = router

	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

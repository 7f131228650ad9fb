package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gamestore-zarzis/backend/internal/config"
	"github.com/gamestore-zarzis/backend/internal/domain"
	"github.com/gamestore-zarzis/backend/internal/repository"
	emailProvider "github.com/gamestore-zarzis/backend/pkg/email"
	"github.com/gamestore-zarzis/backend/pkg/otp"
)

var errBackendDown = errors.New("backend down")

// memoryCodes applies the same conditional update a real store runs.
type memoryCodes struct {
	mu        sync.Mutex
	codes     []domain.VerificationCode
	createErr error
	verifyErr error
}

func (m *memoryCodes) Create(_ context.Context, code *domain.VerificationCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return m.createErr
	}
	m.codes = append(m.codes, *code)
	return nil
}

func (m *memoryCodes) Verify(_ context.Context, identifier, code string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.verifyErr != nil {
		return m.verifyErr
	}

	idx := -1
	for i, c := range m.codes {
		if c.Identifier != identifier || c.Code != code || !c.Acceptable(now) {
			continue
		}
		if idx == -1 || c.CreatedAt.After(m.codes[idx].CreatedAt) {
			idx = i
		}
	}
	if idx == -1 {
		return domain.ErrNoRowsAffected
	}

	m.codes[idx].IsVerified = true
	return nil
}

func (m *memoryCodes) DeleteExpiredBefore(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.codes[:0]
	var deleted int64
	for _, c := range m.codes {
		if c.ExpiresAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	m.codes = kept
	return deleted, nil
}

func (m *memoryCodes) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.codes)
}

func (m *memoryCodes) latest(identifier string) domain.VerificationCode {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matching []domain.VerificationCode
	for _, c := range m.codes {
		if c.Identifier == identifier {
			matching = append(matching, c)
		}
	}
	sort.Slice(matching, func(i, j int) bool { return matching[i].CreatedAt.Before(matching[j].CreatedAt) })
	return matching[len(matching)-1]
}

type memorySettings struct {
	mu     sync.Mutex
	values map[string][]byte
	getErr error
	gets   int
}

func newMemorySettings() *memorySettings {
	return &memorySettings{values: map[string][]byte{}}
}

func (m *memorySettings) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (m *memorySettings) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

type recordingEmail struct {
	mu   sync.Mutex
	sent []emailProvider.SendEmailInput
	err  error
}

func (r *recordingEmail) Send(_ context.Context, input emailProvider.SendEmailInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sent = append(r.sent, input)
	return r.err
}

func (r *recordingEmail) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

// hangingEmail blocks until its context is done, like a provider that never answers.
type hangingEmail struct{}

func (hangingEmail) Send(ctx context.Context, _ emailProvider.SendEmailInput) error {
	<-ctx.Done()
	return ctx.Err()
}

type hangingSMS struct{}

func (hangingSMS) Send(ctx context.Context, _, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

type smsMessage struct {
	to   string
	body string
}

type recordingSMS struct {
	mu   sync.Mutex
	sent []smsMessage
	err  error
}

func (r *recordingSMS) Send(_ context.Context, to, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sent = append(r.sent, smsMessage{to: to, body: body})
	return r.err
}

func (r *recordingSMS) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

type fixedGenerator struct {
	codes []string
	next  int
}

func (g *fixedGenerator) RandomCode(int) (string, error) {
	code := g.codes[g.next%len(g.codes)]
	g.next++
	return code, nil
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	codes    *memoryCodes
	settings *memorySettings
	email    *recordingEmail
	sms      *recordingSMS
	clock    *clock
	services *Services
}

var testTemplates = fstest.MapFS{
	"verification_code.html": {Data: []byte("<p>{{.VerificationCode}}</p><p>{{.ExpiresInMinutes}}</p>")},
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.VerificationCodeLength = otp.DefaultLength
	cfg.Auth.VerificationCodeTTL = 10 * time.Minute
	cfg.Email.Templates.Verification = "verification_code.html"
	cfg.Delivery.Timeout = time.Second
	cfg.Database.QueryTimeout = time.Second
	cfg.Cleanup.Retention = 24 * time.Hour
	return cfg
}

func newFixture(t *testing.T, generator otp.Generator) *fixture {
	t.Helper()

	if generator == nil {
		generator = otp.NewDigitGenerator()
	}

	f := &fixture{
		codes:    &memoryCodes{},
		settings: newMemorySettings(),
		email:    &recordingEmail{},
		sms:      &recordingSMS{},
		clock:    newClock(),
	}

	f.services = NewServices(Deps{
		Config: testConfig(),
		Repos: &repository.Repositories{
			VerificationCodes: f.codes,
			StoreSettings:     f.settings,
		},
		OtpGenerator: generator,
		EmailSender:  f.email,
		SMSSender:    f.sms,
		Templates:    testTemplates,
		Now:          f.clock.Now,
	})

	return f
}

func (f *fixture) setSMSEnabled(raw string) {
	f.settings.values[domain.SettingSMSEnabled] = []byte(raw)
}

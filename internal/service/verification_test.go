package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gamestore-zarzis/backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerification_IssueStoresFreshCode(t *testing.T) {
	f := newFixture(t, nil)

	code, err := f.services.Verification.Issue(context.Background(), "user@example.com")
	require.NoError(t, err)

	assert.Len(t, code.Code, 6)
	for _, r := range code.Code {
		assert.True(t, r >= '0' && r <= '9', "non digit %q", r)
	}
	assert.False(t, code.IsVerified)
	assert.Equal(t, f.clock.Now(), code.CreatedAt)
	assert.Equal(t, f.clock.Now().Add(10*time.Minute), code.ExpiresAt)
	assert.Equal(t, 1, f.codes.count())
}

func TestVerification_IssueStorageError(t *testing.T) {
	f := newFixture(t, nil)
	f.codes.createErr = errBackendDown

	_, err := f.services.Verification.Issue(context.Background(), "user@example.com")
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, errBackendDown)
}

func TestVerification_SendThenVerify(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.services.Verification.Send(ctx, "user@example.com", domain.ChannelEmail))
	require.Equal(t, 1, f.email.calls())

	sent := f.email.sent[0]
	code := f.codes.latest("user@example.com").Code
	assert.Equal(t, "user@example.com", sent.To)
	assert.Equal(t, "Code de Connexion - Game Store Zarzis", sent.Subject)
	assert.Contains(t, sent.Body, code)
	assert.Contains(t, sent.Text, code)

	require.NoError(t, f.services.Verification.Verify(ctx, "user@example.com", code))
}

func TestVerification_NeverIssuedCodeFails(t *testing.T) {
	f := newFixture(t, &fixedGenerator{codes: []string{"111111"}})
	ctx := context.Background()

	_, err := f.services.Verification.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	assert.ErrorIs(t, f.services.Verification.Verify(ctx, "user@example.com", "222222"), ErrInvalidCode)
	assert.ErrorIs(t, f.services.Verification.Verify(ctx, "other@example.com", "111111"), ErrInvalidCode)
}

func TestVerification_SecondVerifyFails(t *testing.T) {
	f := newFixture(t, &fixedGenerator{codes: []string{"123456"}})
	ctx := context.Background()

	_, err := f.services.Verification.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	require.NoError(t, f.services.Verification.Verify(ctx, "user@example.com", "123456"))
	assert.ErrorIs(t, f.services.Verification.Verify(ctx, "user@example.com", "123456"), ErrInvalidCode)
}

func TestVerification_ExpiredCodeFails(t *testing.T) {
	f := newFixture(t, &fixedGenerator{codes: []string{"123456"}})
	ctx := context.Background()

	_, err := f.services.Verification.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	f.clock.Advance(10*time.Minute + time.Second)

	assert.ErrorIs(t, f.services.Verification.Verify(ctx, "user@example.com", "123456"), ErrInvalidCode)
}

func TestVerification_OlderCodeStaysValid(t *testing.T) {
	f := newFixture(t, &fixedGenerator{codes: []string{"111111", "222222"}})
	ctx := context.Background()

	_, err := f.services.Verification.Issue(ctx, "user@example.com")
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	_, err = f.services.Verification.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	require.NoError(t, f.services.Verification.Verify(ctx, "user@example.com", "111111"))
	require.NoError(t, f.services.Verification.Verify(ctx, "user@example.com", "222222"))
}

func TestVerification_ConcurrentVerifySucceedsOnce(t *testing.T) {
	f := newFixture(t, &fixedGenerator{codes: []string{"654321"}})
	ctx := context.Background()

	_, err := f.services.Verification.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.services.Verification.Verify(ctx, "user@example.com", "654321") == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes.Load())
}

func TestVerification_VerifyStorageError(t *testing.T) {
	f := newFixture(t, nil)
	f.codes.verifyErr = errBackendDown

	err := f.services.Verification.Verify(context.Background(), "user@example.com", "123456")
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrInvalidCode)
}

func TestVerification_SMSDisabledEmailIdentifierRoutesToEmail(t *testing.T) {
	f := newFixture(t, nil)
	f.setSMSEnabled("false")

	require.NoError(t, f.services.Verification.Send(context.Background(), "user@example.com", domain.ChannelSMS))

	assert.Equal(t, 1, f.email.calls())
	assert.Zero(t, f.sms.calls())
}

func TestVerification_SMSDisabledPhoneIsUnavailable(t *testing.T) {
	f := newFixture(t, nil)
	f.setSMSEnabled("false")

	err := f.services.Verification.Send(context.Background(), "+21623290065", domain.ChannelSMS)
	assert.ErrorIs(t, err, ErrChannelUnavailable)

	assert.Zero(t, f.email.calls())
	assert.Zero(t, f.sms.calls())
	assert.Zero(t, f.codes.count())
}

func TestVerification_SMSEnabledUsesSMS(t *testing.T) {
	f := newFixture(t, nil)
	f.setSMSEnabled("true")

	require.NoError(t, f.services.Verification.Send(context.Background(), "+21623290065", domain.ChannelSMS))

	require.Equal(t, 1, f.sms.calls())
	code := f.codes.latest("+21623290065").Code
	assert.Equal(t, "+21623290065", f.sms.sent[0].to)
	assert.Equal(t, "Your Game Store Zarzis verification code is: "+code, f.sms.sent[0].body)
	assert.Zero(t, f.email.calls())
}

func TestVerification_UnreadableToggleFailsOpen(t *testing.T) {
	f := newFixture(t, nil)
	f.settings.getErr = errBackendDown

	require.NoError(t, f.services.Verification.Send(context.Background(), "+21623290065", domain.ChannelSMS))
	assert.Equal(t, 1, f.sms.calls())
}

func TestVerification_DeliveryFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.email.err = errBackendDown

	err := f.services.Verification.Send(context.Background(), "user@example.com", domain.ChannelEmail)
	assert.ErrorIs(t, err, ErrDeliveryFailure)
}

func TestVerification_StorageFailureSkipsDelivery(t *testing.T) {
	f := newFixture(t, nil)
	f.codes.createErr = errBackendDown

	err := f.services.Verification.Send(context.Background(), "user@example.com", domain.ChannelEmail)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Zero(t, f.email.calls())
}

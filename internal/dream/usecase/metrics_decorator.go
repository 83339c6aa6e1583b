package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
	dreamDomain "github.com/allisson/dreamcrypt/internal/dream/domain"
	"github.com/allisson/dreamcrypt/internal/metrics"
)

const metricsDomain = "dream"

// encryptionUseCaseWithMetrics decorates EncryptionUseCase with metrics instrumentation.
type encryptionUseCaseWithMetrics struct {
	next    EncryptionUseCase
	metrics metrics.BusinessMetrics
}

// NewEncryptionUseCaseWithMetrics wraps an EncryptionUseCase with metrics recording.
// IsEncrypted and EncryptionInfo are pure checks and are not recorded.
func NewEncryptionUseCaseWithMetrics(useCase EncryptionUseCase, m metrics.BusinessMetrics) EncryptionUseCase {
	return &encryptionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (e *encryptionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, ok bool) {
	status := metrics.StatusSuccess
	if !ok {
		status = metrics.StatusError
	}

	e.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	e.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// EncryptData records metrics for generic data encryption.
func (e *encryptionUseCaseWithMetrics) EncryptData(
	ctx context.Context,
	data any,
	userID, password string,
) (*cryptoDomain.Envelope, error) {
	start := time.Now()
	envelope, err := e.next.EncryptData(ctx, data, userID, password)
	e.record(ctx, "encrypt_data", start, err == nil)
	return envelope, err
}

// DecryptData records metrics for generic data decryption.
func (e *encryptionUseCaseWithMetrics) DecryptData(
	ctx context.Context,
	envelope *cryptoDomain.Envelope,
	userID, password string,
) (any, error) {
	start := time.Now()
	data, err := e.next.DecryptData(ctx, envelope, userID, password)
	e.record(ctx, "decrypt_data", start, err == nil)
	return data, err
}

// EncryptContent records metrics for content encryption.
func (e *encryptionUseCaseWithMetrics) EncryptContent(
	ctx context.Context,
	content, userID, password string,
) (*cryptoDomain.Envelope, error) {
	start := time.Now()
	envelope, err := e.next.EncryptContent(ctx, content, userID, password)
	e.record(ctx, "encrypt_content", start, err == nil)
	return envelope, err
}

// DecryptContent records metrics for content decryption.
func (e *encryptionUseCaseWithMetrics) DecryptContent(
	ctx context.Context,
	envelope *cryptoDomain.Envelope,
	userID, password string,
) (string, error) {
	start := time.Now()
	content, err := e.next.DecryptContent(ctx, envelope, userID, password)
	e.record(ctx, "decrypt_content", start, err == nil)
	return content, err
}

// EncryptDream records metrics for dream record encryption.
func (e *encryptionUseCaseWithMetrics) EncryptDream(
	ctx context.Context,
	record dreamDomain.Record,
	userID, password string,
) (*dreamDomain.EncryptedDream, error) {
	start := time.Now()
	dream, err := e.next.EncryptDream(ctx, record, userID, password)
	e.record(ctx, "encrypt_dream", start, err == nil)
	return dream, err
}

// DecryptDream records metrics for dream record decryption.
func (e *encryptionUseCaseWithMetrics) DecryptDream(
	ctx context.Context,
	dream *dreamDomain.EncryptedDream,
	userID, password string,
) (dreamDomain.Record, error) {
	start := time.Now()
	record, err := e.next.DecryptDream(ctx, dream, userID, password)
	e.record(ctx, "decrypt_dream", start, err == nil)
	return record, err
}

// ChangeUserPassword records metrics for password verification. A failed verification counts as an error.
func (e *encryptionUseCaseWithMetrics) ChangeUserPassword(
	ctx context.Context,
	userID, oldPassword, newPassword string,
) (bool, error) {
	start := time.Now()
	ok, err := e.next.ChangeUserPassword(ctx, userID, oldPassword, newPassword)
	e.record(ctx, "change_password", start, ok && err == nil)
	return ok, err
}

// TestEncryption records metrics for the self-test.
func (e *encryptionUseCaseWithMetrics) TestEncryption(ctx context.Context, userID string) bool {
	start := time.Now()
	ok := e.next.TestEncryption(ctx, userID)
	e.record(ctx, "test_encryption", start, ok)
	return ok
}

// IsEncrypted delegates without recording.
func (e *encryptionUseCaseWithMetrics) IsEncrypted(value any) bool {
	return e.next.IsEncrypted(value)
}

// EncryptionInfo delegates without recording.
func (e *encryptionUseCaseWithMetrics) EncryptionInfo() dreamDomain.EncryptionInfo {
	return e.next.EncryptionInfo()
}

// ClearUserKeys records metrics for key erasure.
func (e *encryptionUseCaseWithMetrics) ClearUserKeys(ctx context.Context, userID string) error {
	start := time.Now()
	err := e.next.ClearUserKeys(ctx, userID)
	e.record(ctx, "clear_user_keys", start, err == nil)
	return err
}

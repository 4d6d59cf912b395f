package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"savaan_backend/pkg/apperrors"
)

// Purpose separates code namespaces so a registration code can never reset a
// password.
type Purpose string

const (
	PurposeRegistration  Purpose = "registration"
	PurposePasswordReset Purpose = "password_reset"
)

type entry struct {
	code      string
	expiresAt time.Time
	issuedAt  time.Time
}

// Issuer generates and verifies one-time codes. Codes are 6 crypto-random
// digits, time-boxed and single-use; reissue inside the cooldown window is
// rejected.
type Issuer struct {
	mu       sync.Mutex
	codes    map[string]entry
	ttl      time.Duration
	cooldown time.Duration
	now      func() time.Time
}

func NewIssuer(ttl, cooldown time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if cooldown < 0 {
		cooldown = 0
	}
	return &Issuer{
		codes:    make(map[string]entry),
		ttl:      ttl,
		cooldown: cooldown,
		now:      time.Now,
	}
}

func key(purpose Purpose, mobile string) string {
	return string(purpose) + ":" + mobile
}

// Issue generates a fresh code for the purpose+mobile pair. An unexpired code
// issued inside the cooldown window blocks reissue with OTPCooldown.
func (i *Issuer) Issue(purpose Purpose, mobile string) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	k := key(purpose, mobile)

	if prev, ok := i.codes[k]; ok {
		sinceIssue := now.Sub(prev.issuedAt)
		if now.Before(prev.expiresAt) && sinceIssue < i.cooldown {
			left := int((i.cooldown - sinceIssue).Round(time.Second).Seconds())
			if left < 1 {
				left = 1
			}
			return "", apperrors.OTPCooldown(left)
		}
	}

	code, err := randomCode()
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	i.codes[k] = entry{
		code:      code,
		expiresAt: now.Add(i.ttl),
		issuedAt:  now,
	}
	return code, nil
}

// Verify consumes the code: a matching, unexpired code is deleted and
// accepted exactly once.
func (i *Issuer) Verify(purpose Purpose, mobile, code string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	k := key(purpose, mobile)
	e, ok := i.codes[k]
	if !ok || i.now().After(e.expiresAt) || e.code != code {
		return apperrors.ErrInvalidOTP
	}

	delete(i.codes, k)
	return nil
}

// Sweep drops expired codes. Called periodically from app bootstrap.
func (i *Issuer) Sweep() {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	for k, e := range i.codes {
		if now.After(e.expiresAt) {
			delete(i.codes, k)
		}
	}
}

// randomCode draws 6 digits from crypto/rand.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

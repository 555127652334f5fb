package lib

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxCodeAttempts bounds the collision-retry loop. The character space makes
// collisions negligible, so hitting the cap almost certainly means the
// existence check itself is broken.
const maxCodeAttempts = 10

// CodeExists reports whether a generated code is already held by an order.
type CodeExists func(ctx context.Context, code string) (bool, error)

func randomCode(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(buf)
}

// GenerateReferenceCode produces a unique order reference code in the format
// ORD-YYYYMMDD-XXXX, with the date taken in UTC at generation time.
func GenerateReferenceCode(ctx context.Context, exists CodeExists) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), randomCode(4))

		taken, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGeneration
}

// GeneratePaymentCode produces a unique 6-character alphanumeric payment code.
func GeneratePaymentCode(ctx context.Context, exists CodeExists) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := randomCode(6)

		taken, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGeneration
}

package competitionservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/leetrboo/leetrboo-api/pkg/retry"
)

const (
	codeMin = 100000
	codeMax = 999999

	// maxCodeAttempts bounds the collision retry loop before the suffixed
	// fallback kicks in.
	maxCodeAttempts = 10
)

// errCodeCollision is the per-attempt outcome consumed by the retry loop.
var errCodeCollision = errors.New("competition code collision")

// GenerateUniqueCompetitionCode produces a 6-digit invite code that no stored
// competition currently uses. On collision it retries up to maxCodeAttempts;
// on exhaustion it falls back to a fresh candidate with a 2-digit
// timestamp-derived suffix, accepting the residual collision risk (the unique
// constraint on competition_code remains the source of truth).
//
// A failed uniqueness lookup propagates as an error rather than counting as a
// collision: a transient storage failure must not be able to burn the retry
// budget and silently reach the fallback path.
func (s *ServiceImpl) GenerateUniqueCompetitionCode(ctx context.Context) (string, error) {
	var code string
	err := retry.Do(ctx, maxCodeAttempts, func(attempt int) error {
		candidate := s.randomCode()
		exists, err := s.repo.CodeExists(ctx, candidate)
		if err != nil {
			return fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if exists {
			s.metrics.CodeCollisions.Inc()
			s.logger.Debug("Invite code collision",
				slog.String("candidate", candidate),
				slog.Int("attempt", attempt+1))
			return retry.Retry(errCodeCollision)
		}
		code = candidate
		return nil
	})
	if errors.Is(err, retry.ErrExhausted) {
		s.metrics.CodeFallbacks.Inc()
		code = fmt.Sprintf("%s%02d", s.randomCode(), s.now().Unix()%100)
		s.logger.Warn("Invite code retries exhausted, using suffixed fallback",
			slog.String("code", code))
		return code, nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *ServiceImpl) randomCode() string {
	return strconv.Itoa(codeMin + s.rng.Intn(codeMax-codeMin+1))
}

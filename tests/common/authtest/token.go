//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"slotbooker/internal/domain/actor"
	"slotbooker/internal/pkg/config"
	"slotbooker/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// IssueToken signs a bearer token for the given role using the test secret.
func IssueToken(t *testing.T, cfg config.Config, role actor.Role) string {
	t.Helper()

	duration, err := time.ParseDuration(cfg.JWT.Duration)
	require.NoError(t, err)

	svc := jwt.NewService(cfg.JWT.Secret, duration)
	token, err := svc.GenerateToken(uuid.New(), role)
	require.NoError(t, err)
	return token
}

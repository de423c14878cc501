package git

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestService_ValidateSource_Disabled(t *testing.T) {
	service := NewService(Config{ValidateSource: false}, zap.NewNop())

	assert.NoError(t, service.ValidateSource(context.Background(), "not-even-a-url", "main"))
}

func TestService_ValidateSource_Unreachable(t *testing.T) {
	service := NewService(Config{ValidateSource: true, Timeout: 5 * time.Second}, zap.NewNop())

	err := service.ValidateSource(context.Background(), t.TempDir()+"/missing-repo", "main")
	assert.ErrorIs(t, err, ErrRepositoryUnreachable)
}

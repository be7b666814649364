package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"vibelink/internal/logger"
)

func TestInitTracingDisabledIsNoop(t *testing.T) {
	shutdown := InitTracing(context.Background(), logger.Nop(), TracingConfig{Enabled: false})
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracingEnabled(t *testing.T) {
	shutdown := InitTracing(context.Background(), logger.Nop(), TracingConfig{Enabled: true, Environment: "test"})
	assert.NoError(t, shutdown(context.Background()))
}

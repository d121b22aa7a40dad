package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
)

func TestLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core).With(logger.RequestID("rid-1")))

	Log(ctx, ConsultaEstado, logger.ConsultaID(7), logger.Estado("cancelada"))

	require.Equal(t, 1, logs.Len())
	e := logs.All()[0]
	assert.Equal(t, "audit", e.LoggerName)
	assert.Equal(t, ConsultaEstado, e.Message)
	fields := e.ContextMap()
	assert.Equal(t, "rid-1", fields["request_id"])
	assert.Equal(t, int64(7), fields["consulta_id"])
	assert.Equal(t, ConsultaEstado, fields["event"])
}

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncrementDBQueryErrors(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("insert", "metrics_test"))
	IncrementDBQueryErrors("insert", "metrics_test")
	assert.Equal(t, before+1, testutil.ToFloat64(DBQueryErrors.WithLabelValues("insert", "metrics_test")))
}

func TestRecordDurations(t *testing.T) {
	RecordDBQueryDuration("select", "metrics_test", 3*time.Millisecond)
	RecordHTTPRequestDuration("GET", "/metrics_test", "200", 5*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(DBQueryDuration, "db_query_duration_seconds"))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(HTTPRequestDuration), 1)
}

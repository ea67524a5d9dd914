package metrics_test

import (
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/configs"
	"github.com/artvault/artvault/pkg/metrics"
)

func hasRoute(engine *gin.Engine, method, path string) bool {
	for _, r := range engine.Routes() {
		if r.Method == method && r.Path == path {
			return true
		}
	}

	return false
}

func TestStartMetricsServerMountsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	cfg := configs.MetricsConfig{Enabled: true, Pprof: true}

	if err := metrics.StartMetricsServer(cfg, engine); err != nil {
		t.Fatalf("StartMetricsServer: %v", err)
	}

	if !hasRoute(engine, "GET", "/metrics") {
		t.Fatalf("expected /metrics route, got %v", engine.Routes())
	}

	if !hasRoute(engine, "GET", "/debug/pprof/*any") {
		t.Fatalf("expected pprof route, got %v", engine.Routes())
	}
}

func TestStartMetricsServerPprofOff(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	cfg := configs.MetricsConfig{Enabled: true}

	if err := metrics.StartMetricsServer(cfg, engine); err != nil {
		t.Fatalf("StartMetricsServer: %v", err)
	}

	if !hasRoute(engine, "GET", "/metrics") {
		t.Fatalf("expected /metrics route, got %v", engine.Routes())
	}

	if hasRoute(engine, "GET", "/debug/pprof/*any") {
		t.Fatalf("pprof route mounted without being enabled")
	}
}

func TestStartMetricsServerDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()

	if err := metrics.StartMetricsServer(configs.MetricsConfig{}, engine); err != nil {
		t.Fatalf("StartMetricsServer: %v", err)
	}

	if len(engine.Routes()) != 0 {
		t.Fatalf("expected no routes while disabled, got %v", engine.Routes())
	}
}

package handlers

import (
	"context"

	gw "irrigation_gateway"
	"irrigation_gateway/internal/models"
	"irrigation_gateway/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockZones struct {
	startResp  gw.Response
	stopResp   gw.Response
	infoResp   gw.Response
	statusResp gw.Response
	ready      bool

	lastZone     any
	lastDuration any
	lastStopZone any
	startCalls   int
	stopCalls    int
	statusCalls  int
}

func (m *mockZones) RequestStart(ctx context.Context, zone, duration any) gw.Response {
	m.startCalls++
	m.lastZone = zone
	m.lastDuration = duration
	return m.startResp
}

func (m *mockZones) RequestStopAll(ctx context.Context, zone any) gw.Response {
	m.stopCalls++
	m.lastStopZone = zone
	return m.stopResp
}

func (m *mockZones) RequestInfo(ctx context.Context) gw.Response { return m.infoResp }

func (m *mockZones) RequestStatus(ctx context.Context) gw.Response {
	m.statusCalls++
	return m.statusResp
}

func (m *mockZones) Ready() bool { return m.ready }

type mockCatalog struct {
	listResp gw.Response
	saveResp gw.Response

	lastID     any
	lastParams service.ZoneParams
	saveCalls  int
}

func (m *mockCatalog) ListZones(ctx context.Context) gw.Response { return m.listResp }

func (m *mockCatalog) SaveZone(ctx context.Context, id any, p service.ZoneParams) gw.Response {
	m.saveCalls++
	m.lastID = id
	m.lastParams = p
	return m.saveResp
}

func (m *mockCatalog) Seed(ctx context.Context, zones []models.Zone) (int, error) {
	return len(zones), nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	h := NewHandler(s, nil, opts...)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/metrics"
	"github.com/MKhiriev/go-pos-terminal/internal/mock"
	"github.com/MKhiriev/go-pos-terminal/internal/prefs"
	"github.com/MKhiriev/go-pos-terminal/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// testAPI — роутер поверх gomock-сервисов и настоящего prefs в памяти.
type testAPI struct {
	router http.Handler

	sync     *mock.MockSyncService
	recovery *mock.MockRecoveryService
	status   *mock.MockStatusService
	catalog  *mock.MockCatalogService
	conn     *mock.MockConnectivityMonitor
	job      *mock.MockSyncJob
	appInfo  *mock.MockAppInfoService
	prefs    *prefs.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctrl := gomock.NewController(t)

	store, err := prefs.Open("")
	require.NoError(t, err)

	api := &testAPI{
		sync:     mock.NewMockSyncService(ctrl),
		recovery: mock.NewMockRecoveryService(ctrl),
		status:   mock.NewMockStatusService(ctrl),
		catalog:  mock.NewMockCatalogService(ctrl),
		conn:     mock.NewMockConnectivityMonitor(ctrl),
		job:      mock.NewMockSyncJob(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
		prefs:    store,
	}

	services := &service.Services{
		AppInfoService:  api.appInfo,
		CatalogService:  api.catalog,
		SyncService:     api.sync,
		RecoveryService: api.recovery,
		StatusService:   api.status,
		Connectivity:    api.conn,
		SyncJob:         api.job,
	}
	api.router = NewHandler(services, store, metrics.New(), logger.Nop()).Init()

	return api
}

func (a *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

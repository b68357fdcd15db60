// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/homeledger/backend/config"
	"github.com/homeledger/backend/internal/infra/dependency"
	reportcache "github.com/homeledger/backend/internal/integration/cache"
	"github.com/homeledger/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var defaultTestTime = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

var (
	serverInit sync.Once
	testServer *httptest.Server
	testDB     *mock.Db
	timeMock   *mock.Time
)

type testContext struct {
	uri         string
	headers     map[string]string
	client      *http.Client
	response    *response
	db          *mock.Db
	timeMock    *mock.Time
	accessToken string
	saved       map[string]string
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		startServer()
	})

	ctx.AfterSuite(func() {
		if testServer != nil {
			testServer.Close()
		}
	})
}

// startServer wires the full application against the in-memory database, miniredis and a settable clock.
func startServer() {
	serverInit.Do(func() {
		testDB = mock.NewDb("ledger_integration")
		timeMock = mock.NewTime()

		cfg := &config.Config{
			Server: config.ServerConfig{Environment: "test", LoginRateLimit: 100},
			JWT:    config.JWTConfig{Secret: testJWTSecret, AccessTokenExpiry: time.Hour},
			Redis:  config.RedisConfig{ReportCacheTTL: time.Minute},
			Ledger: config.LedgerConfig{ThousandsSeparator: "."},
		}

		injector := dependency.NewInjector(cfg, testDB.DbConn, dependency.Options{
			Cache:      reportcache.NewRedisReportCache(mock.NewRedis(), cfg.Redis.ReportCacheTTL),
			Clock:      timeMock,
			BcryptCost: bcrypt.MinCost,
		})

		testServer = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	startServer()

	test := &testContext{
		uri:      testServer.URL,
		client:   &http.Client{Timeout: 10 * time.Second},
		db:       testDB,
		timeMock: timeMock,
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current date is "([^"]*)"$`, test.theCurrentDateIs)
	ctx.Given(`^I am registered as "([^"]*)"$`, test.iAmRegisteredAs)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, test.iSaveTheResponseFieldAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Cache assertion steps
	ctx.Then(`^the report cache should contain (\d+) entries$`, test.theReportCacheShouldContainEntries)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.response = nil
	t.saved = map[string]string{"random_id": uuid.NewString()}
	t.timeMock.SetCurrentTime(defaultTestTime)

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.ClearDB()
}

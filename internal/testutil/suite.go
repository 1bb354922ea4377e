package testutil

import (
	"context"
	"os"

	"github.com/stretchr/testify/suite"
	"github.com/uptrace/bun"
)

// BaseSuite provides per-suite database setup and per-test isolation.
//
// In-process mode (default): each test runs inside a transaction on a cloned
// database and the server is rebuilt over that transaction; TearDownTest
// rolls it back.
//
// External mode (TEST_SERVER_URL set): requests go to the running server and
// tests must clean up after themselves through the API.
//
//	type AlgorithmsSuite struct {
//	    testutil.BaseSuite
//	}
//
//	func (s *AlgorithmsSuite) TestCreate() {
//	    resp := s.Client.POST("/api/v1/algorithms", testutil.WithJSONBody(body))
//	}
type BaseSuite struct {
	suite.Suite
	TestDB *TestDB
	Server *TestServer
	Client *HTTPClient
	Ctx    context.Context

	dbSuffix       string
	externalServer bool
}

// SetDBSuffix sets the database name suffix. Call it before BaseSuite.SetupSuite.
func (s *BaseSuite) SetDBSuffix(suffix string) {
	s.dbSuffix = suffix
}

// SetupSuite creates the test database, or connects to the external server.
func (s *BaseSuite) SetupSuite() {
	s.Ctx = context.Background()

	if serverURL := os.Getenv("TEST_SERVER_URL"); serverURL != "" {
		s.T().Logf("Using external server: %s", serverURL)
		s.externalServer = true
		s.Client = NewExternalHTTPClient(serverURL)
		return
	}

	suffix := s.dbSuffix
	if suffix == "" {
		suffix = "test"
	}
	testDB, err := SetupTestDB(s.Ctx, suffix)
	s.Require().NoError(err, "Failed to setup test database")
	s.TestDB = testDB
}

// TearDownSuite drops the test database.
func (s *BaseSuite) TearDownSuite() {
	if s.TestDB != nil {
		s.TestDB.Close()
	}
}

// SetupTest opens the test transaction and builds a server over it.
func (s *BaseSuite) SetupTest() {
	if s.externalServer {
		return
	}
	s.Require().NoError(s.TestDB.BeginTestTx(s.Ctx), "Failed to begin test transaction")
	s.Server = NewTestServer(s.TestDB)
	s.Client = NewHTTPClient(s.Server.Echo)
}

// TearDownTest rolls back everything the test wrote.
func (s *BaseSuite) TearDownTest() {
	if s.externalServer {
		return
	}
	_ = s.TestDB.RollbackTestTx()
}

// DB returns the test transaction, or nil against an external server.
func (s *BaseSuite) DB() bun.IDB {
	if s.externalServer {
		return nil
	}
	return s.TestDB.GetDB()
}

// IsExternal returns true if using an external server
func (s *BaseSuite) IsExternal() bool {
	return s.externalServer
}

// SkipIfExternalServer skips tests that need direct database access.
func (s *BaseSuite) SkipIfExternalServer(reason string) {
	if s.externalServer {
		s.T().Skipf("Skipping in external server mode: %s", reason)
	}
}

// UseServer replaces the per-test server, e.g. one from NewTestServerWithConfig.
func (s *BaseSuite) UseServer(ts *TestServer) {
	s.Server = ts
	s.Client = NewHTTPClient(ts.Echo)
}

// MustCreate POSTs body to path, requires 201 and returns the new id.
func (s *BaseSuite) MustCreate(path string, body any, opts ...RequestOption) string {
	id, err := s.Client.Create(path, body, opts...)
	s.Require().NoError(err)
	s.Require().NotEmpty(id)
	return id
}

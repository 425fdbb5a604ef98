package kvrepo_test

import (
	"context"
	"testing"
	"time"

	"tracking/internal/adapters/out/storage/kvrepo"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// KeyValueStoreIntegrationTestSuite provides integration tests for the
// GORM-backed key-value store using PostgreSQL containers.
type KeyValueStoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	store     *kvrepo.GormKeyValueStore
}

func (suite *KeyValueStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&kvrepo.KVRecordDTO{}))
}

func (suite *KeyValueStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE kv_records").Error)
	suite.store = kvrepo.NewGormKeyValueStore(suite.db)
}

func (suite *KeyValueStoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *KeyValueStoreIntegrationTestSuite) TestGet_AbsentKey_ReturnsNotFound() {
	value, ok, err := suite.store.Get(context.Background(), "missing")

	suite.Require().NoError(err)
	suite.False(ok)
	suite.Nil(value)
}

func (suite *KeyValueStoreIntegrationTestSuite) TestSet_ThenGet_RoundTrips() {
	ctx := context.Background()

	err := suite.store.Set(ctx, "tracking:active_order", []byte(`{"id":"abc"}`))
	suite.Require().NoError(err)

	value, ok, err := suite.store.Get(ctx, "tracking:active_order")
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal([]byte(`{"id":"abc"}`), value)
}

func (suite *KeyValueStoreIntegrationTestSuite) TestSet_ExistingKey_Overwrites() {
	ctx := context.Background()

	suite.Require().NoError(suite.store.Set(ctx, "k", []byte("v1")))
	suite.Require().NoError(suite.store.Set(ctx, "k", []byte("v2")))

	value, ok, err := suite.store.Get(ctx, "k")
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal([]byte("v2"), value)

	suite.assertRecordCount(1)
}

func (suite *KeyValueStoreIntegrationTestSuite) TestRemove_ExistingKey_Deletes() {
	ctx := context.Background()

	suite.Require().NoError(suite.store.Set(ctx, "k", []byte("v1")))
	suite.Require().NoError(suite.store.Remove(ctx, "k"))

	_, ok, err := suite.store.Get(ctx, "k")
	suite.Require().NoError(err)
	suite.False(ok)
	suite.assertRecordCount(0)
}

func (suite *KeyValueStoreIntegrationTestSuite) TestRemove_AbsentKey_IsNoOp() {
	err := suite.store.Remove(context.Background(), "missing")
	suite.Require().NoError(err)
}

func (suite *KeyValueStoreIntegrationTestSuite) TestKeys_AreIndependent() {
	ctx := context.Background()

	suite.Require().NoError(suite.store.Set(ctx, "a", []byte("1")))
	suite.Require().NoError(suite.store.Set(ctx, "b", []byte("2")))
	suite.Require().NoError(suite.store.Remove(ctx, "a"))

	_, ok, err := suite.store.Get(ctx, "a")
	suite.Require().NoError(err)
	suite.False(ok)

	value, ok, err := suite.store.Get(ctx, "b")
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal([]byte("2"), value)
}

func (suite *KeyValueStoreIntegrationTestSuite) TestGet_CancelledContext_ReturnsError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := suite.store.Get(ctx, "k")
	suite.Require().Error(err)
}

func (suite *KeyValueStoreIntegrationTestSuite) assertRecordCount(expected int) {
	var count int64
	err := suite.db.Model(&kvrepo.KVRecordDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestKeyValueStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(KeyValueStoreIntegrationTestSuite))
}

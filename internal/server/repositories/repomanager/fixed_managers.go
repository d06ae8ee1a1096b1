package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/accounts"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// InMemoryRepositoryManager hands out the same process-local repository
// regardless of the connection passed in.
type InMemoryRepositoryManager struct {
	repo *accounts.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{repo: accounts.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) Accounts(dbx.DBTX) accounts.Repository {
	return m.repo
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

// MongoRepositoryManager works on a collection; the driver pools its own
// connections so the DBTX argument is ignored.
type MongoRepositoryManager struct {
	coll *mongo.Collection
}

func NewMongoRepositoryManager(coll *mongo.Collection) *MongoRepositoryManager {
	return &MongoRepositoryManager{coll: coll}
}

func (m *MongoRepositoryManager) Accounts(dbx.DBTX) accounts.Repository {
	return accounts.NewMongoRepository(m.coll)
}

// RunMigrations creates the unique email index.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context, _ *sql.DB) error {
	return accounts.EnsureIndexes(ctx, m.coll)
}

package mock

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/homeledger/backend/internal/infra/db/dbtest"
	"github.com/homeledger/backend/internal/integration/persistence/model"
)

var once sync.Once
var db *Db

type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

type tabler interface {
	TableName() string
}

// NewDb opens the in-memory database shared by every scenario of the suite.
func NewDb(name string) *Db {
	once.Do(func() {
		db = open(name)
	})

	return db
}

func open(name string) *Db {
	dbConn, err := dbtest.New(name)
	if err != nil {
		panic(fmt.Sprintf("failed to open database. err: %s", err.Error()))
	}

	models := make(map[string]any)
	for _, m := range model.All() {
		models[m.(tabler).TableName()] = m
	}

	newDbMock := &Db{
		DbConn: dbConn,
		models: models,
	}

	if err := newDbMock.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB removes every row so the next scenario starts from an empty ledger.
func (d *Db) ClearDB() error {
	return dbtest.Reset(d.DbConn)
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

package postgresstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/poi2/unit-of-work-go/uow"
)

const (
	defaultUsersTableName  = "users"
	defaultShopsTableName  = "shops"
	defaultOrdersTableName = "orders"

	dialectPostgres = "postgres"

	colID         = "id"
	colName       = "name"
	colEmail      = "email"
	colUserID     = "user_id"
	colShopID     = "shop_id"
	colTotalCents = "total_cents"
	colAttributes = "attributes"

	castUUID  = "?::uuid"
	castJsonb = "?::jsonb"
)

var (
	// ErrEmptyTableName is returned when an empty table name is supplied to an option.
	ErrEmptyTableName = errors.New("empty table name supplied")

	// ErrBuildingQueryFailed is returned when a SQL statement cannot be built.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrExecutingQueryFailed is returned when statement execution fails inside the transaction.
	ErrExecutingQueryFailed = errors.New("executing query failed")

	// ErrGettingRowsAffectedFailed is returned when the rows affected count cannot be read.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected count failed")

	// ErrEntityNotFound is returned when an update or delete affects no rows.
	ErrEntityNotFound = errors.New("entity not found, no rows were affected")
)

// Store implements the uow.UserStore, uow.ShopStore, and uow.OrderStore
// persistence ports against PostgreSQL tables.
type Store struct {
	usersTableName  string
	shopsTableName  string
	ordersTableName string
}

// Option defines a functional option for configuring the Store.
type Option func(*Store) error

// WithUsersTableName sets the table name for the User aggregate.
func WithUsersTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		s.usersTableName = tableName

		return nil
	}
}

// WithShopsTableName sets the table name for the Shop aggregate.
func WithShopsTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		s.shopsTableName = tableName

		return nil
	}
}

// WithOrdersTableName sets the table name for the Order aggregate.
func WithOrdersTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		s.ordersTableName = tableName

		return nil
	}
}

// NewStore creates a new Store with optional configuration.
func NewStore(options ...Option) (*Store, error) {
	store := &Store{
		usersTableName:  defaultUsersTableName,
		shopsTableName:  defaultShopsTableName,
		ordersTableName: defaultOrdersTableName,
	}

	for _, option := range options {
		if err := option(store); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// execExpectingRows executes the statement and fails when no rows were affected.
func (s *Store) execExpectingRows(ctx context.Context, db uow.DBHandle, sqlQuery string) error {
	result, execErr := db.Exec(ctx, sqlQuery)
	if execErr != nil {
		return errors.Join(ErrExecutingQueryFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		return errors.Join(ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected == 0 {
		return ErrEntityNotFound
	}

	return nil
}

func buildInsertQuery(tableName string, record goqu.Record) (string, error) {
	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		Insert(tableName).
		Rows(record).
		ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func buildUpdateQuery(tableName string, record goqu.Record, id uuid.UUID) (string, error) {
	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		Update(tableName).
		Set(record).
		Where(goqu.C(colID).Eq(goqu.L(castUUID, id.String()))).
		ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func buildDeleteQuery(tableName string, id uuid.UUID) (string, error) {
	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		Delete(tableName).
		Where(goqu.C(colID).Eq(goqu.L(castUUID, id.String()))).
		ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// attributesJSON normalizes an attributes payload for a jsonb column.
func attributesJSON(attributes json.RawMessage) (string, error) {
	if len(attributes) == 0 {
		return "{}", nil
	}

	if !jsoniter.ConfigFastest.Valid(attributes) {
		return "", uow.ErrInvalidAttributesJSON
	}

	return string(attributes), nil
}

// ensureID assigns a fresh UUIDv7 when the entity comes in without one.
func ensureID(id uuid.UUID) (uuid.UUID, error) {
	if id != uuid.Nil {
		return id, nil
	}

	return uuid.NewV7()
}

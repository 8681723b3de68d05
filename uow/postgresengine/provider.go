package postgresengine

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/poi2/unit-of-work-go/uow"
	"github.com/poi2/unit-of-work-go/uow/postgresengine/internal/adapters"
	"github.com/poi2/unit-of-work-go/uow/postgresstore"
)

// Provider hands out fresh coordinators and sessions bound to one live
// database connection. It owns the wiring: the transaction starter, the
// persistence stores, and the observability collaborators.
type Provider struct {
	db               uow.TransactionStarter
	stores           uow.Stores
	logger           uow.Logger
	contextualLogger uow.ContextualLogger
	metricsCollector uow.MetricsCollector
	tracingCollector uow.TracingCollector
}

// NewProvider creates a new Provider from any uow.TransactionStarter with optional configuration.
// Unless overridden with WithStores, the persistence ports default to the
// postgresstore reference implementation with its default table names.
func NewProvider(db uow.TransactionStarter, options ...Option) (*Provider, error) {
	if db == nil {
		return nil, uow.ErrNilDatabaseConnection
	}

	store, storeErr := postgresstore.NewStore()
	if storeErr != nil {
		return nil, storeErr
	}

	p := &Provider{
		db:     db,
		stores: uow.Stores{Users: store, Shops: store, Orders: store},
	}

	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}

	if err := p.stores.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// NewProviderFromPGXPool creates a new Provider using a pgx pool with optional configuration.
func NewProviderFromPGXPool(pool *pgxpool.Pool, options ...Option) (*Provider, error) {
	if pool == nil {
		return nil, uow.ErrNilDatabaseConnection
	}

	return NewProvider(adapters.NewPGXStarter(pool), options...)
}

// NewProviderFromSQLDB creates a new Provider using a sql.DB with optional configuration.
func NewProviderFromSQLDB(db *sql.DB, options ...Option) (*Provider, error) {
	if db == nil {
		return nil, uow.ErrNilDatabaseConnection
	}

	return NewProvider(adapters.NewSQLStarter(db), options...)
}

// NewProviderFromSQLX creates a new Provider using a sqlx.DB with optional configuration.
func NewProviderFromSQLX(db *sqlx.DB, options ...Option) (*Provider, error) {
	if db == nil {
		return nil, uow.ErrNilDatabaseConnection
	}

	return NewProvider(adapters.NewSQLXStarter(db), options...)
}

// Coordinator returns a fresh classical coordinator with an empty command queue.
// One coordinator per logical unit of work; instances must not be shared.
func (p *Provider) Coordinator() *Coordinator {
	return &Coordinator{
		db:              p.db,
		stores:          p.stores,
		instrumentation: p.instrumentation(),
	}
}

// Session returns a fresh practical-variant session in the Idle state.
// One session per logical unit of work; instances must not be shared.
func (p *Provider) Session() *Session {
	return &Session{
		db:              p.db,
		stores:          p.stores,
		instrumentation: p.instrumentation(),
	}
}

func (p *Provider) instrumentation() instrumentation {
	return instrumentation{
		logger:           p.logger,
		contextualLogger: p.contextualLogger,
		metricsCollector: p.metricsCollector,
		tracingCollector: p.tracingCollector,
	}
}

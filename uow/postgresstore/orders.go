package postgresstore

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/poi2/unit-of-work-go/uow"
)

// CreateOrder inserts the order inside the open transaction and returns the persisted instance.
func (s *Store) CreateOrder(ctx context.Context, db uow.DBHandle, order uow.Order) (uow.Order, error) {
	id, idErr := ensureID(order.ID)
	if idErr != nil {
		return uow.Order{}, idErr
	}
	order.ID = id

	record, recordErr := orderRecord(order)
	if recordErr != nil {
		return uow.Order{}, recordErr
	}

	sqlQuery, buildErr := buildInsertQuery(s.ordersTableName, record)
	if buildErr != nil {
		return uow.Order{}, buildErr
	}

	if execErr := s.execExpectingRows(ctx, db, sqlQuery); execErr != nil {
		return uow.Order{}, execErr
	}

	return order, nil
}

// UpdateOrder updates the order inside the open transaction and returns the persisted instance.
func (s *Store) UpdateOrder(ctx context.Context, db uow.DBHandle, order uow.Order) (uow.Order, error) {
	record, recordErr := orderRecord(order)
	if recordErr != nil {
		return uow.Order{}, recordErr
	}
	delete(record, colID)

	sqlQuery, buildErr := buildUpdateQuery(s.ordersTableName, record, order.ID)
	if buildErr != nil {
		return uow.Order{}, buildErr
	}

	if execErr := s.execExpectingRows(ctx, db, sqlQuery); execErr != nil {
		return uow.Order{}, execErr
	}

	return order, nil
}

// DeleteOrder deletes the order inside the open transaction.
func (s *Store) DeleteOrder(ctx context.Context, db uow.DBHandle, order uow.Order) error {
	sqlQuery, buildErr := buildDeleteQuery(s.ordersTableName, order.ID)
	if buildErr != nil {
		return buildErr
	}

	return s.execExpectingRows(ctx, db, sqlQuery)
}

func orderRecord(order uow.Order) (goqu.Record, error) {
	attributes, attributesErr := attributesJSON(order.Attributes)
	if attributesErr != nil {
		return nil, attributesErr
	}

	record := goqu.Record{
		colID:         goqu.L(castUUID, order.ID.String()),
		colUserID:     goqu.L(castUUID, order.UserID.String()),
		colShopID:     goqu.L(castUUID, order.ShopID.String()),
		colTotalCents: order.TotalCents,
		colAttributes: goqu.L(castJsonb, attributes),
	}

	return record, nil
}

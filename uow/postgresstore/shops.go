package postgresstore

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/poi2/unit-of-work-go/uow"
)

// CreateShop inserts the shop inside the open transaction and returns the persisted instance.
func (s *Store) CreateShop(ctx context.Context, db uow.DBHandle, shop uow.Shop) (uow.Shop, error) {
	id, idErr := ensureID(shop.ID)
	if idErr != nil {
		return uow.Shop{}, idErr
	}
	shop.ID = id

	record, recordErr := shopRecord(shop)
	if recordErr != nil {
		return uow.Shop{}, recordErr
	}

	sqlQuery, buildErr := buildInsertQuery(s.shopsTableName, record)
	if buildErr != nil {
		return uow.Shop{}, buildErr
	}

	if execErr := s.execExpectingRows(ctx, db, sqlQuery); execErr != nil {
		return uow.Shop{}, execErr
	}

	return shop, nil
}

// UpdateShop updates the shop inside the open transaction and returns the persisted instance.
func (s *Store) UpdateShop(ctx context.Context, db uow.DBHandle, shop uow.Shop) (uow.Shop, error) {
	record, recordErr := shopRecord(shop)
	if recordErr != nil {
		return uow.Shop{}, recordErr
	}
	delete(record, colID)

	sqlQuery, buildErr := buildUpdateQuery(s.shopsTableName, record, shop.ID)
	if buildErr != nil {
		return uow.Shop{}, buildErr
	}

	if execErr := s.execExpectingRows(ctx, db, sqlQuery); execErr != nil {
		return uow.Shop{}, execErr
	}

	return shop, nil
}

// DeleteShop deletes the shop inside the open transaction.
func (s *Store) DeleteShop(ctx context.Context, db uow.DBHandle, shop uow.Shop) error {
	sqlQuery, buildErr := buildDeleteQuery(s.shopsTableName, shop.ID)
	if buildErr != nil {
		return buildErr
	}

	return s.execExpectingRows(ctx, db, sqlQuery)
}

func shopRecord(shop uow.Shop) (goqu.Record, error) {
	attributes, attributesErr := attributesJSON(shop.Attributes)
	if attributesErr != nil {
		return nil, attributesErr
	}

	record := goqu.Record{
		colID:         goqu.L(castUUID, shop.ID.String()),
		colName:       shop.Name,
		colAttributes: goqu.L(castJsonb, attributes),
	}

	return record, nil
}

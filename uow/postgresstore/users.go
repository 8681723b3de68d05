package postgresstore

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/poi2/unit-of-work-go/uow"
)

// CreateUser inserts the user inside the open transaction and returns the persisted instance.
func (s *Store) CreateUser(ctx context.Context, db uow.DBHandle, user uow.User) (uow.User, error) {
	id, idErr := ensureID(user.ID)
	if idErr != nil {
		return uow.User{}, idErr
	}
	user.ID = id

	record, recordErr := userRecord(user)
	if recordErr != nil {
		return uow.User{}, recordErr
	}

	sqlQuery, buildErr := buildInsertQuery(s.usersTableName, record)
	if buildErr != nil {
		return uow.User{}, buildErr
	}

	if execErr := s.execExpectingRows(ctx, db, sqlQuery); execErr != nil {
		return uow.User{}, execErr
	}

	return user, nil
}

// UpdateUser updates the user inside the open transaction and returns the persisted instance.
func (s *Store) UpdateUser(ctx context.Context, db uow.DBHandle, user uow.User) (uow.User, error) {
	record, recordErr := userRecord(user)
	if recordErr != nil {
		return uow.User{}, recordErr
	}
	delete(record, colID)

	sqlQuery, buildErr := buildUpdateQuery(s.usersTableName, record, user.ID)
	if buildErr != nil {
		return uow.User{}, buildErr
	}

	if execErr := s.execExpectingRows(ctx, db, sqlQuery); execErr != nil {
		return uow.User{}, execErr
	}

	return user, nil
}

// DeleteUser deletes the user inside the open transaction.
func (s *Store) DeleteUser(ctx context.Context, db uow.DBHandle, user uow.User) error {
	sqlQuery, buildErr := buildDeleteQuery(s.usersTableName, user.ID)
	if buildErr != nil {
		return buildErr
	}

	return s.execExpectingRows(ctx, db, sqlQuery)
}

func userRecord(user uow.User) (goqu.Record, error) {
	attributes, attributesErr := attributesJSON(user.Attributes)
	if attributesErr != nil {
		return nil, attributesErr
	}

	record := goqu.Record{
		colID:         goqu.L(castUUID, user.ID.String()),
		colName:       user.Name,
		colEmail:      user.Email,
		colAttributes: goqu.L(castJsonb, attributes),
	}

	return record, nil
}

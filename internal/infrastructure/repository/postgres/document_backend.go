// Package postgres stores resource documents as jsonb rows.
package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/document"
	qb "github.com/riskibarqy/esports-hub/internal/platform/querybuilder"
	"github.com/riskibarqy/esports-hub/internal/platform/resilience"
)

const (
	upsertSuffix = "ON CONFLICT (resource) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()"

	// documentLockClass keys the advisory locks of this table apart from
	// other users of pg_advisory_xact_lock in the same database.
	documentLockClass = 0x4553
	advisoryLockQuery = "SELECT pg_advisory_xact_lock($1, hashtext($2))"
)

// DocumentBackend keeps one row per resource in content_documents.
// Update holds a transaction-scoped advisory lock on the resource for the
// whole cycle, so writers serialize even before the row exists.
type DocumentBackend struct {
	db      *sqlx.DB
	breaker *resilience.CircuitBreaker
}

func NewDocumentBackend(db *sqlx.DB, breaker *resilience.CircuitBreaker) *DocumentBackend {
	return &DocumentBackend{db: db, breaker: breaker}
}

func (b *DocumentBackend) Load(ctx context.Context, resource string) ([]byte, bool, error) {
	query, args, err := qb.Select("resource", "body", "created_at", "updated_at").
		From(documentsTable).
		Where(qb.Eq("resource", resource)).
		ToSQL()
	if err != nil {
		return nil, false, errors.Wrap(err, "build select document query")
	}

	ctx, span := startQuerySpan(ctx, "postgres.DocumentBackend.Load", resource, query)
	var row documentTableModel
	found := true
	err = b.breaker.Execute(ctx, func(ctx context.Context) error {
		if err := b.db.GetContext(ctx, &row, query, args...); err != nil {
			if isNotFound(err) {
				found = false
				return nil
			}
			return err
		}
		return nil
	})
	endQuerySpan(span, err)
	if err != nil {
		return nil, false, errors.Wrapf(err, "select document %s", resource)
	}
	if !found {
		return nil, false, nil
	}
	return row.Body, true, nil
}

func (b *DocumentBackend) Update(ctx context.Context, resource string, fn document.MutateFunc) error {
	var mutateErr error
	err := b.breaker.Execute(ctx, func(ctx context.Context) error {
		tx, err := b.db.BeginTxx(ctx, nil)
		if err != nil {
			return errors.Wrap(err, "begin transaction")
		}
		defer func() { _ = tx.Rollback() }()

		if err := lockResource(ctx, tx, resource); err != nil {
			return err
		}
		current, exists, err := lockDocument(ctx, tx, resource)
		if err != nil {
			return err
		}

		next, err := fn(current, exists)
		if err != nil {
			// Not a database failure; keep it away from the breaker.
			mutateErr = err
			return nil
		}

		if next == nil {
			if err := deleteDocument(ctx, tx, resource); err != nil {
				return err
			}
		} else if err := upsertDocument(ctx, tx, resource, next); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return errors.Wrap(err, "commit transaction")
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "update document %s", resource)
	}
	return mutateErr
}

func lockResource(ctx context.Context, tx *sqlx.Tx, resource string) error {
	ctx, span := startQuerySpan(ctx, "postgres.DocumentBackend.advisoryLock", resource, advisoryLockQuery)
	_, err := tx.ExecContext(ctx, advisoryLockQuery, documentLockClass, resource)
	endQuerySpan(span, err)
	if err != nil {
		return errors.Wrap(err, "acquire resource lock")
	}
	return nil
}

func lockDocument(ctx context.Context, tx *sqlx.Tx, resource string) ([]byte, bool, error) {
	query, args, err := qb.Select("body").
		From(documentsTable).
		Where(qb.Eq("resource", resource)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return nil, false, errors.Wrap(err, "build lock document query")
	}

	ctx, span := startQuerySpan(ctx, "postgres.DocumentBackend.lock", resource, query)
	var body []byte
	err = tx.GetContext(ctx, &body, query, args...)
	if isNotFound(err) {
		endQuerySpan(span, nil)
		return nil, false, nil
	}
	endQuerySpan(span, err)
	if err != nil {
		return nil, false, errors.Wrap(err, "lock document")
	}
	return body, true, nil
}

func upsertDocument(ctx context.Context, tx *sqlx.Tx, resource string, body []byte) error {
	query, args, err := qb.InsertModel(documentsTable, documentInsertModel{
		Resource: resource,
		Body:     string(body),
	}, upsertSuffix)
	if err != nil {
		return errors.Wrap(err, "build upsert document query")
	}
	ctx, span := startQuerySpan(ctx, "postgres.DocumentBackend.upsert", resource, query)
	_, err = tx.ExecContext(ctx, query, args...)
	endQuerySpan(span, err)
	if err != nil {
		return errors.Wrap(err, "upsert document")
	}
	return nil
}

func deleteDocument(ctx context.Context, tx *sqlx.Tx, resource string) error {
	query, args, err := qb.DeleteFrom(documentsTable).
		Where(qb.Eq("resource", resource)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete document query")
	}
	ctx, span := startQuerySpan(ctx, "postgres.DocumentBackend.delete", resource, query)
	_, err = tx.ExecContext(ctx, query, args...)
	endQuerySpan(span, err)
	if err != nil {
		return errors.Wrap(err, "delete document")
	}
	return nil
}

package repo

import (
	"context"
	"fmt"

	"garage/internal/domain"
	"garage/internal/infra"
	"garage/internal/sequence"
	"garage/internal/sqlinline"
)

// SequenceRepositoryPG reserves references inside a transaction that holds a
// row lock on the owning entity, so concurrent callers never see the same
// set of issued references.
type SequenceRepositoryPG struct {
	sql infra.TxRunner
}

func NewSequenceRepository(sql infra.TxRunner) *SequenceRepositoryPG {
	return &SequenceRepositoryPG{sql: sql}
}

// Reserve computes and records the next reference for entityID under
// numericPrefix.
func (r *SequenceRepositoryPG) Reserve(ctx context.Context, entityID, numericPrefix string) (string, error) {
	var reference string
	err := r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		var shortCode string
		if err := tx.QueryRow(ctx, sqlinline.QLockEntity, entityID).Scan(&shortCode); err != nil {
			if isMissing(err) {
				return fmt.Errorf("entity %s: %w", entityID, domain.ErrNotFound)
			}
			return err
		}
		prefix, err := sequence.FullPrefix(shortCode, numericPrefix)
		if err != nil {
			return fmt.Errorf("entity %s: %w", entityID, err)
		}

		rows, err := tx.Query(ctx, sqlinline.QListIssuedReferences, prefix)
		if err != nil {
			return err
		}
		var issued []string
		for rows.Next() {
			var ref string
			if err := rows.Scan(&ref); err != nil {
				rows.Close()
				return err
			}
			issued = append(issued, ref)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		reference, err = sequence.NextID(issued, shortCode, numericPrefix)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sqlinline.QInsertIssuedReference, reference, entityID); err != nil {
			return fmt.Errorf("record reference %s: %w", reference, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return reference, nil
}

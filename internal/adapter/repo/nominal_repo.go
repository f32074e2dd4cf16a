package repo

import (
	"context"
	"fmt"

	"garage/internal/domain"
	"garage/internal/infra"
	"garage/internal/sqlinline"
)

// NominalRuleRepositoryPG implements domain.NominalRuleRepository.
type NominalRuleRepositoryPG struct {
	sql infra.TxRunner
}

func NewNominalRuleRepository(sql infra.TxRunner) *NominalRuleRepositoryPG {
	return &NominalRuleRepositoryPG{sql: sql}
}

// ListForEntity returns rules scoped to the entity or to all entities.
func (r *NominalRuleRepositoryPG) ListForEntity(ctx context.Context, entityID string) ([]domain.NominalCodeRule, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListNominalRulesForEntity, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.NominalCodeRule
	for rows.Next() {
		var rule domain.NominalCodeRule
		if err := rows.Scan(
			&rule.ID,
			&rule.Name,
			&rule.Priority,
			&rule.EntityID,
			&rule.ItemType,
			&rule.Keywords,
			&rule.ExcludeKeywords,
			&rule.NominalCodeID,
		); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// ReplaceAll upserts codes and swaps the whole rule set atomically. Each
// rule's slice index is stored as its position so ties on priority read back
// in import order.
func (r *NominalRuleRepositoryPG) ReplaceAll(ctx context.Context, codes []domain.NominalCode, rules []domain.NominalCodeRule) error {
	return r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		for _, c := range codes {
			if _, err := tx.Exec(ctx, sqlinline.QUpsertNominalCode, c.ID, c.Code, c.Name); err != nil {
				return fmt.Errorf("upsert nominal code %s: %w", c.ID, err)
			}
		}
		if _, err := tx.Exec(ctx, sqlinline.QDeleteNominalRules); err != nil {
			return fmt.Errorf("clear rules: %w", err)
		}
		for i, rule := range rules {
			if _, err := tx.Exec(ctx, sqlinline.QInsertNominalRule,
				rule.ID,
				rule.Name,
				rule.Priority,
				rule.EntityID,
				rule.ItemType,
				rule.Keywords,
				rule.ExcludeKeywords,
				rule.NominalCodeID,
				i,
			); err != nil {
				return fmt.Errorf("insert rule %s: %w", rule.ID, err)
			}
		}
		return nil
	})
}

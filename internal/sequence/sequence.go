// Package sequence mints human-readable business references of the form
// {SHORTCODE}{numeric prefix}{5-digit sequence}, e.g. BPP99200007.
package sequence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"garage/internal/domain"
)

// Width is the minimum number of digits in the sequence suffix.
const Width = 5

// ErrMissingShortCode is returned when the business entity has no short code.
var ErrMissingShortCode = fmt.Errorf("entity short code is missing: %w", domain.ErrConfiguration)

// Kind identifies the document type a reference is issued for.
type Kind string

const (
	KindEstimate      Kind = "estimate"
	KindJob           Kind = "job"
	KindInvoice       Kind = "invoice"
	KindPurchaseOrder Kind = "purchase-order"
	KindPurchase      Kind = "purchase"
)

var prefixes = map[Kind]string{
	KindEstimate:      "991",
	KindJob:           "992",
	KindInvoice:       "911",
	KindPurchaseOrder: "944",
	KindPurchase:      "945",
}

// Prefix returns the numeric prefix that partitions the ID space for kind.
func (k Kind) Prefix() (string, error) {
	p, ok := prefixes[k]
	if !ok {
		return "", fmt.Errorf("unknown reference kind %q: %w", k, domain.ErrInvalidArgument)
	}
	return p, nil
}

// FullPrefix returns the upper-cased short code followed by numericPrefix.
func FullPrefix(shortCode, numericPrefix string) (string, error) {
	shortCode = strings.TrimSpace(shortCode)
	if shortCode == "" {
		return "", ErrMissingShortCode
	}
	return cases.Upper(language.Und).String(shortCode) + numericPrefix, nil
}

// NextSequence scans existingIDs for references under the entity's prefix and
// returns the zero-padded successor of the highest suffix found. Suffixes that
// are not plain non-negative integers are ignored.
func NextSequence(existingIDs []string, shortCode, numericPrefix string) (string, error) {
	prefix, err := FullPrefix(shortCode, numericPrefix)
	if err != nil {
		return "", err
	}
	var highest uint64
	for _, id := range existingIDs {
		rest, ok := strings.CutPrefix(id, prefix)
		if !ok || rest == "" {
			continue
		}
		n, err := strconv.ParseUint(rest, 10, 64)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%0*d", Width, highest+1), nil
}

// NextID returns the complete next reference for the entity and prefix.
func NextID(existingIDs []string, shortCode, numericPrefix string) (string, error) {
	seq, err := NextSequence(existingIDs, shortCode, numericPrefix)
	if err != nil {
		return "", err
	}
	prefix, _ := FullPrefix(shortCode, numericPrefix)
	return prefix + seq, nil
}

// IDs extracts the reference field from a collection of records so it can
// be passed to NextSequence or NextID.
func IDs[T any](items []T, idOf func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = idOf(item)
	}
	return out
}

// IsMissingShortCode reports whether err stems from an unconfigured entity.
func IsMissingShortCode(err error) bool {
	return errors.Is(err, ErrMissingShortCode)
}

// Package seqid generates human readable sequential identifiers such as
// ST-0001, EN-0042 or EX-0007.
package seqid

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Kind names a family of identifiers sharing one prefix and one sequence.
type Kind string

const (
	KindStudent    Kind = "student"
	KindEnrollment Kind = "enrollment"
	KindExam       Kind = "exam"
)

// Prefix returns the identifier prefix for the kind.
func (k Kind) Prefix() string {
	switch k {
	case KindStudent:
		return "ST"
	case KindEnrollment:
		return "EN"
	case KindExam:
		return "EX"
	default:
		return strings.ToUpper(string(k))
	}
}

// Strategy names accepted by New.
const (
	StrategyCounter = "counter"
	StrategyLegacy  = "legacy"
)

const padWidth = 4

// Format renders n with the prefix, zero padded to four digits. Wider numbers
// are kept in full.
func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s-%0*d", prefix, padWidth, n)
}

// Parse extracts the numeric suffix of id.
func Parse(prefix, id string) (int64, bool) {
	rest, ok := strings.CutPrefix(id, prefix+"-")
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Next returns the identifier following last. An empty or unparsable last
// starts the sequence at 0001.
func Next(prefix, last string) string {
	n, ok := Parse(prefix, last)
	if !ok {
		return Format(prefix, 1)
	}
	return Format(prefix, n+1)
}

// Store is the persistence seam both strategies sit on.
type Store interface {
	// LastID returns the lexicographically greatest identifier of the kind,
	// or "" when none exists.
	LastID(ctx context.Context, kind Kind) (string, error)
	// Advance atomically raises the kind's counter to at least floor, then
	// increments it and returns the new value.
	Advance(ctx context.Context, kind Kind, floor int64) (int64, error)
}

// Generator hands out the next identifier for a kind.
type Generator interface {
	Next(ctx context.Context, kind Kind) (string, error)
	Strategy() string
}

// New selects a generator strategy.
func New(strategy string, store Store) (Generator, error) {
	switch strategy {
	case StrategyLegacy, "":
		return &legacyGenerator{store: store}, nil
	case StrategyCounter:
		return &counterGenerator{store: store}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}

// legacyGenerator reads the last identifier and increments it in memory.
// Two concurrent callers can observe the same last identifier and produce the
// same value; the unique index then rejects one of the inserts.
type legacyGenerator struct {
	store Store
}

func (g *legacyGenerator) Strategy() string { return StrategyLegacy }

func (g *legacyGenerator) Next(ctx context.Context, kind Kind) (string, error) {
	last, err := g.store.LastID(ctx, kind)
	if err != nil {
		return "", fmt.Errorf("read last %s id: %w", kind, err)
	}
	return Next(kind.Prefix(), last), nil
}

// counterGenerator uses a per kind counter document. The counter is seeded
// from the greatest existing identifier so switching strategies never reissues
// an identifier already in use. A number is taken before the insert runs, so a
// rejected insert leaves a gap in the sequence.
type counterGenerator struct {
	store Store
}

func (g *counterGenerator) Strategy() string { return StrategyCounter }

func (g *counterGenerator) Next(ctx context.Context, kind Kind) (string, error) {
	last, err := g.store.LastID(ctx, kind)
	if err != nil {
		return "", fmt.Errorf("read last %s id: %w", kind, err)
	}
	floor, _ := Parse(kind.Prefix(), last)

	n, err := g.store.Advance(ctx, kind, floor)
	if err != nil {
		return "", fmt.Errorf("advance %s counter: %w", kind, err)
	}
	return Format(kind.Prefix(), n), nil
}

package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-mdp/game"
	"github.com/beka-birhanu/vinom-mdp/identity"
	"github.com/beka-birhanu/vinom-mdp/service/i"
	"github.com/google/uuid"
)

type fakeOperatorRepo struct {
	byName map[string]*identity.Operator
}

func newFakeOperatorRepo() *fakeOperatorRepo {
	return &fakeOperatorRepo{byName: make(map[string]*identity.Operator)}
}

func (r *fakeOperatorRepo) Save(op *identity.Operator) error {
	if existing, ok := r.byName[op.Name]; ok && existing.ID != op.ID {
		return identity.ErrNameConflict
	}
	r.byName[op.Name] = op
	return nil
}

func (r *fakeOperatorRepo) ByID(id uuid.UUID) (*identity.Operator, error) {
	for _, op := range r.byName {
		if op.ID == id {
			return op, nil
		}
	}
	return nil, identity.ErrOperatorMissing
}

func (r *fakeOperatorRepo) ByName(name string) (*identity.Operator, error) {
	op, ok := r.byName[name]
	if !ok {
		return nil, identity.ErrOperatorMissing
	}
	return op, nil
}

type fakeTokenizer struct {
	claims map[string]interface{}
}

func (f *fakeTokenizer) Generate(claims map[string]interface{}, _ time.Duration) (string, error) {
	f.claims = claims
	return "signed", nil
}

func (f *fakeTokenizer) Decode(string) (map[string]interface{}, error) {
	return f.claims, nil
}

type fakeRoundRepo struct {
	records []game.RoundRecord
	err     error
}

func (r *fakeRoundRepo) Insert(_ context.Context, rec game.RoundRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *fakeRoundRepo) BySession(_ context.Context, sessionID uuid.UUID) ([]game.RoundRecord, error) {
	var out []game.RoundRecord
	for _, rec := range r.records {
		if rec.SessionID == sessionID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeScoreBoard struct {
	totals map[string]float64
}

func (b *fakeScoreBoard) Record(_ context.Context, member string, score float64) error {
	if b.totals == nil {
		b.totals = make(map[string]float64)
	}
	b.totals[member] += score
	return nil
}

func (b *fakeScoreBoard) Top(_ context.Context, limit int64) ([]i.ScoreEntry, error) {
	var out []i.ScoreEntry
	for m, s := range b.totals {
		out = append(out, i.ScoreEntry{Member: m, Score: s})
	}
	slices.SortFunc(out, func(a, b i.ScoreEntry) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeLocker struct {
	mu       sync.Mutex
	acquired []string
	err      error
}

func (l *fakeLocker) Acquire(_ context.Context, name string, _ time.Duration) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	l.acquired = append(l.acquired, name)
	return l.mu.Unlock, nil
}

var errStoreDown = errors.New("store down")

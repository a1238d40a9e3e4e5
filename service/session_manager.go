package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-mdp/config"
	"github.com/beka-birhanu/vinom-mdp/game"
	"github.com/beka-birhanu/vinom-mdp/service/i"
	"github.com/google/uuid"
)

const (
	defaultDecisionLockTTL = 5 * time.Second
	defaultSessionTTL      = 30 * time.Minute
)

var (
	ErrSessionNotFound = errors.New("no such session")
	ErrNotOwner        = errors.New("session belongs to another operator")
)

var _ i.SessionManager = &SessionManager{}

type sessionEntry struct {
	session  *game.Session
	lastUsed time.Time
}

// SessionManager keeps the live solver sessions in memory and serialises the steps of each one
// behind a named lock.
type SessionManager struct {
	agent    *game.Agent
	rounds   i.RoundRepo
	board    i.ScoreBoard
	locker   i.Locker
	sessions map[uuid.UUID]*sessionEntry
	lockTTL  time.Duration
	ttl      time.Duration
	now      func() time.Time
	logger   *log.Logger
	sync.RWMutex
}

// SessionManagerConfig holds the collaborators of a SessionManager.
type SessionManagerConfig struct {
	Agent      *game.Agent
	Rounds     i.RoundRepo
	ScoreBoard i.ScoreBoard
	Locker     i.Locker
	LockTTL    time.Duration // Lifetime of a decision lock; defaults to five seconds
	SessionTTL time.Duration // Idle time after which Sweep drops a session; defaults to thirty minutes
	Logger     *log.Logger
}

// NewSessionManager creates a SessionManager.
func NewSessionManager(c SessionManagerConfig) (*SessionManager, error) {
	if c.Agent == nil || c.Rounds == nil || c.ScoreBoard == nil || c.Locker == nil {
		return nil, errors.New("session manager needs an agent, a round repo, a score board and a locker")
	}

	sm := &SessionManager{
		agent:    c.Agent,
		rounds:   c.Rounds,
		board:    c.ScoreBoard,
		locker:   c.Locker,
		sessions: make(map[uuid.UUID]*sessionEntry),
		lockTTL:  c.LockTTL,
		ttl:      c.SessionTTL,
		now:      time.Now,
		logger:   c.Logger,
	}
	if sm.lockTTL <= 0 {
		sm.lockTTL = defaultDecisionLockTTL
	}
	if sm.ttl <= 0 {
		sm.ttl = defaultSessionTTL
	}
	if sm.logger == nil {
		sm.logger = log.New(io.Discard, "", 0)
	}
	return sm, nil
}

// Open starts a new session for the operator.
func (sm *SessionManager) Open(operatorID uuid.UUID) uuid.UUID {
	sm.Lock()
	defer sm.Unlock()

	id := uuid.New()
	for {
		if _, ok := sm.sessions[id]; !ok {
			break
		}
		id = uuid.New()
	}

	sm.sessions[id] = &sessionEntry{session: game.NewSession(id, operatorID), lastUsed: sm.now()}
	sm.logger.Printf("%s[INFO]%s opened session %s for operator %s", config.LogInfoColor, config.LogColorReset, id, operatorID)
	return id
}

// Decide runs one decision step of the session under its lock.
func (sm *SessionManager) Decide(ctx context.Context, operatorID, sessionID uuid.UUID, st game.State) (game.Decision, error) {
	entry, err := sm.owned(operatorID, sessionID)
	if err != nil {
		return game.Decision{}, err
	}

	release, err := sm.locker.Acquire(ctx, lockName(sessionID), sm.lockTTL)
	if err != nil {
		return game.Decision{}, fmt.Errorf("locking session %s: %w", sessionID, err)
	}
	defer release()

	decision, err := sm.agent.Decide(entry.session, st)
	if err != nil {
		sm.logger.Printf("%s[WARN]%s decision for session %s failed: %v", config.LogWarnColor, config.LogColorReset, sessionID, err)
		return game.Decision{}, err
	}

	sm.touch(entry)
	return decision, nil
}

// EndRound stores the record of the session's current round, adds its score to the operator's
// leaderboard total and starts the next round. The round is not ended when the record cannot be
// stored.
func (sm *SessionManager) EndRound(ctx context.Context, operatorID, sessionID uuid.UUID, outcome game.Outcome, score float64) (game.RoundRecord, error) {
	entry, err := sm.owned(operatorID, sessionID)
	if err != nil {
		return game.RoundRecord{}, err
	}

	release, err := sm.locker.Acquire(ctx, lockName(sessionID), sm.lockTTL)
	if err != nil {
		return game.RoundRecord{}, fmt.Errorf("locking session %s: %w", sessionID, err)
	}
	defer release()

	rec := sm.agent.RoundRecord(entry.session, outcome, score)
	if err := sm.rounds.Insert(ctx, rec); err != nil {
		sm.logger.Printf("%s[ERROR]%s storing round %d of session %s: %v", config.LogErrorColor, config.LogColorReset, rec.Round, sessionID, err)
		return game.RoundRecord{}, err
	}

	if err := sm.board.Record(ctx, operatorID.String(), score); err != nil {
		sm.logger.Printf("%s[ERROR]%s scoring round %d of session %s: %v", config.LogErrorColor, config.LogColorReset, rec.Round, sessionID, err)
	}

	entry.session.EndRound()
	sm.touch(entry)
	sm.logger.Printf("%s[INFO]%s session %s finished round %d: %s %.1f", config.LogInfoColor, config.LogColorReset, sessionID, rec.Round, outcome, score)
	return rec, nil
}

// Rounds returns the stored records of the session's finished rounds.
func (sm *SessionManager) Rounds(ctx context.Context, operatorID, sessionID uuid.UUID) ([]game.RoundRecord, error) {
	if _, err := sm.owned(operatorID, sessionID); err != nil {
		return nil, err
	}
	return sm.rounds.BySession(ctx, sessionID)
}

// Close drops the session.
func (sm *SessionManager) Close(operatorID, sessionID uuid.UUID) error {
	if _, err := sm.owned(operatorID, sessionID); err != nil {
		return err
	}

	sm.Lock()
	defer sm.Unlock()
	delete(sm.sessions, sessionID)
	sm.logger.Printf("%s[INFO]%s closed session %s", config.LogInfoColor, config.LogColorReset, sessionID)
	return nil
}

// Leaderboard returns the operators with the highest total round score.
func (sm *SessionManager) Leaderboard(ctx context.Context, limit int64) ([]i.ScoreEntry, error) {
	return sm.board.Top(ctx, limit)
}

// Sweep drops every session idle for longer than the session TTL and returns how many it dropped.
func (sm *SessionManager) Sweep() int {
	sm.Lock()
	defer sm.Unlock()

	cutoff := sm.now().Add(-sm.ttl)
	dropped := 0
	for id, entry := range sm.sessions {
		if entry.lastUsed.Before(cutoff) {
			delete(sm.sessions, id)
			dropped++
		}
	}
	if dropped > 0 {
		sm.logger.Printf("%s[INFO]%s swept %d idle sessions", config.LogInfoColor, config.LogColorReset, dropped)
	}
	return dropped
}

// RunJanitor calls Sweep every interval until ctx is done.
func (sm *SessionManager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sm.Sweep()
		}
	}
}

func (sm *SessionManager) owned(operatorID, sessionID uuid.UUID) (*sessionEntry, error) {
	sm.RLock()
	defer sm.RUnlock()

	entry, ok := sm.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if entry.session.OperatorID != operatorID {
		return nil, ErrNotOwner
	}
	return entry, nil
}

func (sm *SessionManager) touch(entry *sessionEntry) {
	sm.Lock()
	entry.lastUsed = sm.now()
	sm.Unlock()
}

func lockName(sessionID uuid.UUID) string {
	return "session:" + sessionID.String() + ":decide_lock"
}

package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-mdp/config"
	"github.com/beka-birhanu/vinom-mdp/game/mdp"
	"github.com/google/uuid"
)

// ErrUnknownOutcome is returned when parsing a round outcome other than win, lose or empty.
var ErrUnknownOutcome = errors.New("unknown round outcome")

// Outcome is how a round ended. The zero value means the host did not say.
type Outcome string

// Round outcomes.
const (
	OutcomeUnknown Outcome = ""
	OutcomeWin     Outcome = "win"
	OutcomeLose    Outcome = "lose"
)

// ParseOutcome maps a host-reported outcome onto an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomeUnknown, OutcomeWin, OutcomeLose:
		return o, nil
	}
	return OutcomeUnknown, fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
}

// RoundRecord is the summary kept for every finished round: the tuning the agent played with and
// what came of it.
type RoundRecord struct {
	ID            uuid.UUID `bson:"_id" json:"id"`
	SessionID     uuid.UUID `bson:"sessionId" json:"session_id"`
	OperatorID    uuid.UUID `bson:"operatorId" json:"operator_id"`
	Round         int       `bson:"round" json:"round"`
	Steps         int       `bson:"steps" json:"steps"`
	SafetyFloor   float64   `bson:"safetyFloor" json:"safety_floor"`
	DecayRate     float64   `bson:"decayRate" json:"decay_rate"`
	Discount      float64   `bson:"discount" json:"discount"`
	Tolerance     float64   `bson:"tolerance" json:"tolerance"`
	DefaultBudget int       `bson:"defaultBudget" json:"default_budget"`
	SparseBudget  int       `bson:"sparseBudget" json:"sparse_budget"`
	Mode          mdp.Mode  `bson:"mode" json:"mode"`
	Outcome       Outcome   `bson:"outcome" json:"outcome"`
	Score         float64   `bson:"score" json:"score"`
	EndedAt       time.Time `bson:"endedAt" json:"ended_at"`
}

// RoundRecord summarises the session's current round. It does not end the round; call
// Session.EndRound once the record is stored.
func (a *Agent) RoundRecord(s *Session, outcome Outcome, score float64) RoundRecord {
	if a.cfg.Verbose {
		a.logger.Printf("%s[INFO]%s round %d of session %s ended: outcome=%q score=%.1f steps=%d",
			config.LogInfoColor, config.LogColorReset, s.Round(), s.ID, outcome, score, s.Steps())
	}

	return RoundRecord{
		ID:            uuid.New(),
		SessionID:     s.ID,
		OperatorID:    s.OperatorID,
		Round:         s.Round(),
		Steps:         s.Steps(),
		SafetyFloor:   a.cfg.SafetyFloor(),
		DecayRate:     a.cfg.DecayRate,
		Discount:      a.cfg.Discount,
		Tolerance:     a.cfg.Tolerance,
		DefaultBudget: a.cfg.DefaultBudget,
		SparseBudget:  a.cfg.SparseBudget,
		Mode:          a.cfg.Mode,
		Outcome:       outcome,
		Score:         score,
		EndedAt:       time.Now().UTC(),
	}
}

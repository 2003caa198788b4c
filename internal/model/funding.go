package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownRoundType is returned when a round type string is not supported.
var ErrUnknownRoundType = errors.New("unknown round type")

// RoundType classifies a funding round.
type RoundType string

// Supported round types.
const (
	RoundPreSeed   RoundType = "pre-seed"
	RoundSeed      RoundType = "seed"
	RoundSeriesA   RoundType = "series-a"
	RoundSeriesB   RoundType = "series-b"
	RoundIDO       RoundType = "ido"
	RoundTokenSale RoundType = "token-sale"
)

// RoundTypes lists every round type in display order.
var RoundTypes = []RoundType{
	RoundPreSeed,
	RoundSeed,
	RoundSeriesA,
	RoundSeriesB,
	RoundIDO,
	RoundTokenSale,
}

// ParseRoundType converts user input into a RoundType.
// Empty input defaults to seed.
func ParseRoundType(s string) (RoundType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	if s == "" {
		return RoundSeed, nil
	}
	for _, rt := range RoundTypes {
		if string(rt) == s {
			return rt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRoundType, s)
}

// Label returns the badge text for a round type, e.g. "SERIES A".
func (rt RoundType) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(rt), "-", " "))
}

// FundingRound is one completed raise.
type FundingRound struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Amount       decimal.Decimal  `json:"amount"`
	Date         time.Time        `json:"date"`
	Type         RoundType        `json:"type"`
	Dilution     float64          `json:"dilution"` // percent of ownership sold
	TokenPrice   *decimal.Decimal `json:"tokenPrice,omitempty"`
	TokensIssued *int64           `json:"tokensIssued,omitempty"`
}

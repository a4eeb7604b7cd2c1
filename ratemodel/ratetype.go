package ratemodel

import (
	"fmt"
	"strings"
)

// RateType is a closed enum of quote kinds. Ordinal values matter: they are
// used verbatim in cache keys and in URL templates that take a "%d"
// placeholder for the ordinal.
type RateType uint8

const (
	NoCash RateType = iota
	Cash
	Card
	Online
	CbRate
)

func (rt RateType) String() string {
	switch rt {
	case NoCash:
		return "NoCash"
	case Cash:
		return "Cash"
	case Card:
		return "Card"
	case Online:
		return "Online"
	case CbRate:
		return "Cb"
	default:
		return fmt.Sprintf("RateType(%d)", uint8(rt))
	}
}

// RateTypePtr returns a pointer to rt, for config tables that need to
// distinguish "retag to this RateType" from "leave it unchanged".
func RateTypePtr(rt RateType) *RateType { return &rt }

// ParseRateType parses a RateType case-insensitively, accepting the
// historical NoCash spellings used by upstream payloads and chat commands.
func ParseRateType(s string) (RateType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "no cash", "no_cash", "non cash", "non_cash", "nocash":
		return NoCash, nil
	case "cash":
		return Cash, nil
	case "card":
		return Card, nil
	case "online":
		return Online, nil
	case "cb":
		return CbRate, nil
	default:
		return 0, fmt.Errorf("ratemodel: unrecognised rate type %q", s)
	}
}

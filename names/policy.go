package names

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/bankrclub/registrar/models"
	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimal places every ETH-denominated price
// is rounded to, for display and for payment-amount comparison alike.
const PriceScale = 4

var namePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Config is the immutable pricing and validation policy. Callers build it
// once from app config and never mutate it.
type Config struct {
	FreeMinLength int
	ReservedNames []string
	PriceSchedule map[int]decimal.Decimal
	Discounts     map[models.PaymentToken]decimal.Decimal
}

type Policy struct {
	freeMinLength int
	reserved      map[string]bool
	schedule      map[int]decimal.Decimal
	discounts     map[models.PaymentToken]decimal.Decimal
}

// NewPolicy validates the config and returns a policy. The price schedule
// must cover every premium length and be strictly decreasing with length.
func NewPolicy(cfg Config) (*Policy, error) {
	if cfg.FreeMinLength < 4 {
		return nil, fmt.Errorf("free min length %d leaves no premium range", cfg.FreeMinLength)
	}

	lengths := make([]int, 0, len(cfg.PriceSchedule))
	for l := range cfg.PriceSchedule {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)

	for l := 3; l < cfg.FreeMinLength; l++ {
		price, ok := cfg.PriceSchedule[l]
		if !ok {
			return nil, fmt.Errorf("price schedule missing length %d", l)
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("price for length %d must be positive", l)
		}
		if l > 3 {
			if price.GreaterThanOrEqual(cfg.PriceSchedule[l-1]) {
				return nil, fmt.Errorf("price for length %d is not below price for length %d", l, l-1)
			}
		}
	}

	for token, rate := range cfg.Discounts {
		if token == models.PaymentTokenETH && !rate.IsZero() {
			return nil, fmt.Errorf("default currency cannot carry a discount")
		}
		if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("discount rate for %s out of range", token)
		}
	}

	reserved := make(map[string]bool, len(cfg.ReservedNames))
	for _, name := range cfg.ReservedNames {
		reserved[name] = true
	}

	schedule := make(map[int]decimal.Decimal, len(cfg.PriceSchedule))
	for l, p := range cfg.PriceSchedule {
		schedule[l] = p
	}
	discounts := make(map[models.PaymentToken]decimal.Decimal, len(cfg.Discounts))
	for t, r := range cfg.Discounts {
		discounts[t] = r
	}

	return &Policy{
		freeMinLength: cfg.FreeMinLength,
		reserved:      reserved,
		schedule:      schedule,
		discounts:     discounts,
	}, nil
}

// ValidationError carries the user-facing reason a name was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate checks a candidate name. The caller must lowercase and trim
// first; the policy only validates, it never normalizes.
func (p *Policy) Validate(name string) error {
	if len(name) < 3 {
		return &ValidationError{Reason: "minimum 3 characters"}
	}
	if len(name) > 32 {
		return &ValidationError{Reason: "maximum 32 characters"}
	}
	if !namePattern.MatchString(name) {
		return &ValidationError{Reason: "lowercase letters, numbers, hyphens only"}
	}
	if name[0] == '-' || name[len(name)-1] == '-' {
		return &ValidationError{Reason: "cannot start or end with hyphen"}
	}
	if p.reserved[name] {
		return &ValidationError{Reason: "reserved name"}
	}
	return nil
}

func (p *Policy) IsPremium(name string) bool {
	return len(name) < p.freeMinLength
}

// BasePrice returns the undiscounted ETH price for a name; zero for free names.
func (p *Policy) BasePrice(name string) decimal.Decimal {
	if !p.IsPremium(name) {
		return decimal.Zero
	}
	return p.schedule[len(name)]
}

// DiscountedPrice applies the payment-token discount and rounds to the
// fixed price scale.
func (p *Policy) DiscountedPrice(basePrice decimal.Decimal, token models.PaymentToken) decimal.Decimal {
	rate := p.discounts[token]
	return basePrice.Mul(decimal.NewFromInt(1).Sub(rate)).Round(PriceScale)
}

// PriceTable returns the discounted price per accepted payment currency.
func (p *Policy) PriceTable(name string) map[models.PaymentToken]decimal.Decimal {
	base := p.BasePrice(name)
	table := map[models.PaymentToken]decimal.Decimal{
		models.PaymentTokenETH: p.DiscountedPrice(base, models.PaymentTokenETH),
	}
	for token := range p.discounts {
		table[token] = p.DiscountedPrice(base, token)
	}
	return table
}

// FromModel builds a policy config from the yaml/env representation.
func FromModel(cfg models.PricingConfig) (Config, error) {
	schedule := make(map[int]decimal.Decimal, len(cfg.PriceSchedule))
	for l, s := range cfg.PriceSchedule {
		price, err := decimal.NewFromString(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid price %q for length %d: %w", s, l, err)
		}
		schedule[l] = price
	}
	discounts := map[models.PaymentToken]decimal.Decimal{
		models.PaymentTokenETH: decimal.Zero,
	}
	for token, s := range cfg.Discounts {
		rate, err := decimal.NewFromString(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid discount %q for token %s: %w", s, token, err)
		}
		discounts[models.PaymentToken(token)] = rate
	}
	return Config{
		FreeMinLength: cfg.FreeMinLength,
		ReservedNames: cfg.ReservedNames,
		PriceSchedule: schedule,
		Discounts:     discounts,
	}, nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"checkout-service/internal/domain"
	"checkout-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	taxRateCacheTTL  = 5 * time.Minute
	taxRateCacheMiss = "none"
)

// TaxService computes tax owed for line items and validates tax identifiers.
// Calculation is a pure function of the inputs and the stored rates, so a
// checkout recomputation reproduces a preview bit-for-bit.
type TaxService struct {
	repo        repository.TaxRateRepository
	redisClient *redis.Client
	group       singleflight.Group
}

func NewTaxService(repo repository.TaxRateRepository) *TaxService {
	return &TaxService{repo: repo}
}

func (s *TaxService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// CalculateTax resolves the jurisdiction (shipping, then billing, then the
// workspace no-tax default) and applies the rate per taxable line, rounding
// half up to the minor currency unit.
func (s *TaxService) CalculateTax(ctx context.Context, workspaceID uint64, items []domain.TaxableItem, shipping, billing *domain.Address) (*domain.TaxBreakdown, error) {
	addr := shipping
	if addr == nil || addr.Country == "" {
		addr = billing
	}

	breakdown := &domain.TaxBreakdown{PerItemTax: make([]int64, len(items))}
	if addr == nil || addr.Country == "" {
		return breakdown, nil
	}

	rate, err := s.lookupRate(ctx, workspaceID, addr.Country, addr.State)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		breakdown.Jurisdiction = addr.Country
		return breakdown, nil
	}

	breakdown.Rate = rate.Rate
	breakdown.Jurisdiction = rate.Country
	if rate.State != "" {
		breakdown.Jurisdiction = rate.Country + "-" + rate.State
	}

	for i, item := range items {
		if !item.Taxable {
			continue
		}
		breakdown.PerItemTax[i] = roundTax(item.Amount, item.Quantity, rate.Rate)
		breakdown.TotalTax += breakdown.PerItemTax[i]
	}
	return breakdown, nil
}

// roundTax rounds half up to the minor unit (amounts are never negative).
func roundTax(amount, quantity int64, rate float64) int64 {
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(quantity)).
		Mul(decimal.NewFromFloat(rate)).
		Round(0).
		IntPart()
}

// lookupRate reads through redis; concurrent misses for the same key are
// collapsed into one repository query.
func (s *TaxService) lookupRate(ctx context.Context, workspaceID uint64, country, state string) (*domain.TaxRate, error) {
	key := fmt.Sprintf("taxrate:%d:%s:%s", workspaceID, country, state)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, key).Result()
		if err == nil {
			if cached == taxRateCacheMiss {
				return nil, nil
			}
			var rate domain.TaxRate
			if err := json.Unmarshal([]byte(cached), &rate); err == nil {
				return &rate, nil
			}
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		rate, err := s.repo.FindByJurisdiction(workspaceID, country, state)
		if err != nil {
			return nil, err
		}
		if s.redisClient != nil {
			if rate == nil {
				s.redisClient.Set(ctx, key, taxRateCacheMiss, taxRateCacheTTL)
			} else if data, err := json.Marshal(rate); err == nil {
				s.redisClient.Set(ctx, key, data, taxRateCacheTTL)
			}
		}
		return rate, nil
	})
	if err != nil {
		return nil, err
	}
	rate, _ := v.(*domain.TaxRate)
	return rate, nil
}

func (s *TaxService) GetWorkspaceTaxRates(ctx context.Context, workspaceID uint64) ([]domain.TaxRate, error) {
	return s.repo.FindByWorkspace(workspaceID)
}

// GetTaxRate returns (nil, nil) for a zero-tax jurisdiction.
func (s *TaxService) GetTaxRate(ctx context.Context, workspaceID uint64, country, state string) (*domain.TaxRate, error) {
	if len(country) != 2 {
		return nil, domain.NewValidation("country must be a 2-letter ISO code, got %q", country)
	}
	return s.repo.FindByJurisdiction(workspaceID, strings.ToUpper(country), strings.ToUpper(state))
}

func (s *TaxService) UpsertTaxRate(ctx context.Context, rate *domain.TaxRate) (*domain.TaxRate, error) {
	if len(rate.Country) != 2 {
		return nil, domain.NewValidation("country must be a 2-letter ISO code, got %q", rate.Country)
	}
	if rate.Rate < 0 || rate.Rate > 1 {
		return nil, domain.NewValidation("rate must be between 0 and 1, got %v", rate.Rate)
	}
	rate.Country = strings.ToUpper(rate.Country)
	rate.State = strings.ToUpper(rate.State)
	if err := s.repo.Upsert(rate); err != nil {
		return nil, err
	}
	if s.redisClient != nil {
		key := fmt.Sprintf("taxrate:%d:%s:%s", rate.WorkspaceID, rate.Country, rate.State)
		s.redisClient.Del(ctx, key)
	}
	return rate, nil
}

// ValidateTaxID applies country-specific format and checksum rules. An
// unsupported country returns valid=false with no error; malformed input
// (empty or non-alphanumeric) is a validation error.
func (s *TaxService) ValidateTaxID(taxID, country string) (*domain.TaxIDValidation, error) {
	normalized := normalizeTaxID(taxID)
	if normalized == "" {
		return nil, domain.NewValidation("tax id is required")
	}
	for _, r := range normalized {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return nil, domain.NewValidation("tax id contains invalid characters")
		}
	}
	country = strings.ToUpper(country)
	if len(country) != 2 {
		return nil, domain.NewValidation("country must be a 2-letter ISO code, got %q", country)
	}

	body := strings.TrimPrefix(normalized, country)
	invalid := &domain.TaxIDValidation{Valid: false}

	switch country {
	case "DE":
		if len(body) != 9 || !isDigits(body) {
			return invalid, nil
		}
	case "FR":
		if len(body) != 11 || !isDigits(body[2:]) {
			return invalid, nil
		}
		if isDigits(body[:2]) && !frenchVATKeyValid(body) {
			return invalid, nil
		}
	case "BE":
		if len(body) != 10 || !isDigits(body) || !belgianVATChecksumValid(body) {
			return invalid, nil
		}
	case "NL":
		if len(body) != 12 || !isDigits(body[:9]) || body[9] != 'B' || !isDigits(body[10:]) {
			return invalid, nil
		}
	case "GB":
		if (len(body) != 9 && len(body) != 12) || !isDigits(body) {
			return invalid, nil
		}
	default:
		return invalid, nil
	}

	return &domain.TaxIDValidation{Valid: true, Formatted: country + body}, nil
}

func normalizeTaxID(taxID string) string {
	replacer := strings.NewReplacer(" ", "", ".", "", "-", "")
	return strings.ToUpper(replacer.Replace(strings.TrimSpace(taxID)))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// frenchVATKeyValid checks the numeric control key: key = (12 + 3*(SIREN mod
// 97)) mod 97.
func frenchVATKeyValid(body string) bool {
	key, _ := strconv.ParseInt(body[:2], 10, 64)
	siren, _ := strconv.ParseInt(body[2:], 10, 64)
	return key == (12+3*(siren%97))%97
}

// belgianVATChecksumValid verifies the mod-97 check digits: the final two
// digits equal 97 minus the leading eight digits modulo 97.
func belgianVATChecksumValid(body string) bool {
	base, _ := strconv.ParseInt(body[:8], 10, 64)
	check, _ := strconv.ParseInt(body[8:], 10, 64)
	return check == 97-(base%97)
}

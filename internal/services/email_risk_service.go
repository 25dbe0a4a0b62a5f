package services

import (
	"context"
	"errors"
	"net"
	"net/mail"
	"strings"
	"time"

	"github.com/checkitsa/app-checkit/internal/logging"
	"github.com/checkitsa/app-checkit/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Resolver is the subset of *net.Resolver used for domain checks.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Signal codes
const (
	SignalInvalidSyntax     = "invalid_syntax"
	SignalDisposableDomain  = "disposable_domain"
	SignalSuspiciousTLD     = "suspicious_tld"
	SignalBrandImpersonated = "brand_impersonation"
	SignalNumericDomain     = "numeric_domain"
	SignalHyphenatedDomain  = "hyphenated_domain"
	SignalScamKeyword       = "scam_keyword"
	SignalFreeMailBrand     = "free_mail_brand"
	SignalNoMailServer      = "no_mail_server"
	SignalNoMXRecord        = "no_mx_record"
)

const maxEmailLength = 254

var disposableDomains = map[string]bool{
	"mailinator.com":    true,
	"guerrillamail.com": true,
	"10minutemail.com":  true,
	"tempmail.com":      true,
	"temp-mail.org":     true,
	"yopmail.com":       true,
	"trashmail.com":     true,
	"sharklasers.com":   true,
	"getnada.com":       true,
	"dispostable.com":   true,
	"maildrop.cc":       true,
	"throwawaymail.com": true,
}

var freeMailDomains = map[string]bool{
	"gmail.com":      true,
	"yahoo.com":      true,
	"outlook.com":    true,
	"hotmail.com":    true,
	"live.com":       true,
	"icloud.com":     true,
	"aol.com":        true,
	"protonmail.com": true,
	"webmail.co.za":  true,
	"mweb.co.za":     true,
	"telkomsa.net":   true,
	"vodamail.co.za": true,
}

var suspiciousTLDs = []string{
	".top", ".xyz", ".click", ".loan", ".work", ".gq", ".tk", ".ml", ".cf", ".ga", ".buzz", ".rest",
}

type brand struct {
	name     string
	official []string
}

// impersonatedBrands are brands commonly impersonated in South African
// scams, with the domains they actually send from.
var impersonatedBrands = []brand{
	{"sars", []string{"sars.gov.za"}},
	{"sassa", []string{"sassa.gov.za"}},
	{"fnb", []string{"fnb.co.za"}},
	{"absa", []string{"absa.co.za"}},
	{"capitec", []string{"capitecbank.co.za"}},
	{"nedbank", []string{"nedbank.co.za"}},
	{"standardbank", []string{"standardbank.co.za"}},
	{"takealot", []string{"takealot.com"}},
	{"vodacom", []string{"vodacom.co.za"}},
	{"postoffice", []string{"postoffice.co.za"}},
}

type keywordGroup struct {
	name  string
	words []string
}

// scamKeywords score at most once per group.
var scamKeywords = []keywordGroup{
	{"money", []string{"refund", "rebate", "cashback", "payout", "reward"}},
	{"prize", []string{"winner", "prize", "lottery", "lotto", "jackpot", "claim"}},
	{"urgency", []string{"urgent", "suspended", "locked", "alert"}},
	{"account", []string{"verify", "verification", "security", "support", "helpdesk", "update"}},
}

// EmailRiskService scores email addresses with syntax, domain and DNS
// heuristics.
type EmailRiskService struct {
	resolver Resolver
	timeout  time.Duration
	logger   *logging.SafeLogger
}

// NewEmailRiskService creates a scorer. A nil resolver uses net.DefaultResolver.
func NewEmailRiskService(resolver Resolver, timeout time.Duration, logger *logging.SafeLogger) *EmailRiskService {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &EmailRiskService{
		resolver: resolver,
		timeout:  timeout,
		logger:   logger,
	}
}

// Assess scores an email address. DNS failures count as missing records and
// never fail the assessment.
func (s *EmailRiskService) Assess(ctx context.Context, email string) models.EmailRiskResult {
	ctx, span := otel.Tracer("").Start(ctx, "EmailRiskService.Assess")
	defer span.End()

	email = strings.TrimSpace(email)
	result := models.EmailRiskResult{
		Email:   email,
		Signals: []models.RiskSignal{},
	}

	local, domain, err := splitEmail(email)
	if err != nil {
		result.Score = 100
		result.Level = models.RiskHigh
		result.Signals = append(result.Signals, models.RiskSignal{
			Code:        SignalInvalidSyntax,
			Description: "address is not a valid email address",
			Weight:      100,
		})
		span.SetAttributes(attribute.Bool("email.valid", false))
		return result
	}

	result.Valid = true
	result.Domain = domain

	add := func(code, description string, weight int) {
		result.Signals = append(result.Signals, models.RiskSignal{Code: code, Description: description, Weight: weight})
		result.Score += weight
	}

	s.scoreDomain(domain, add)
	s.scoreLocalPart(local, domain, add)
	result.HasMX, result.DomainResolves = s.lookupDomain(ctx, domain)

	switch {
	case !result.HasMX && !result.DomainResolves:
		add(SignalNoMailServer, "domain has no mail server or address records", 35)
	case !result.HasMX:
		add(SignalNoMXRecord, "domain has no MX record", 10)
	}

	if result.Score > 100 {
		result.Score = 100
	}
	result.Level = models.RiskLevelForScore(result.Score)

	span.SetAttributes(
		attribute.Bool("email.valid", true),
		attribute.Int("email.score", result.Score),
		attribute.String("email.level", string(result.Level)),
	)
	return result
}

func (s *EmailRiskService) scoreDomain(domain string, add func(string, string, int)) {
	if disposableDomains[domain] {
		add(SignalDisposableDomain, "disposable mailbox provider", 40)
	}

	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(domain, tld) {
			add(SignalSuspiciousTLD, "top-level domain frequently used for abuse", 20)
			break
		}
	}

	if name := impersonatedBrand(domain); name != "" {
		add(SignalBrandImpersonated, "domain mentions "+name+" but is not an official "+name+" domain", 30)
	}

	label := domain
	if i := strings.Index(domain, "."); i > 0 {
		label = domain[:i]
	}
	digits := 0
	for _, r := range label {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if len(label) > 0 && digits*2 >= len(label) && digits >= 3 {
		add(SignalNumericDomain, "domain name is mostly digits", 10)
	}

	if strings.Count(label, "-") >= 2 {
		add(SignalHyphenatedDomain, "domain name has several hyphens", 10)
	}
}

func (s *EmailRiskService) scoreLocalPart(local, domain string, add func(string, string, int)) {
	lower := strings.ToLower(local)
	for _, group := range scamKeywords {
		for _, w := range group.words {
			if strings.Contains(lower, w) {
				add(SignalScamKeyword, "address contains "+group.name+" keyword \""+w+"\"", 15)
				break
			}
		}
	}

	if freeMailDomains[domain] {
		for _, b := range impersonatedBrands {
			if strings.Contains(lower, b.name) {
				add(SignalFreeMailBrand, "free mailbox claims to be "+b.name, 25)
				break
			}
		}
	}
}

func (s *EmailRiskService) lookupDomain(ctx context.Context, domain string) (hasMX, resolves bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	mx, err := s.resolver.LookupMX(ctx, domain)
	if err != nil {
		s.logDNSError("mx", domain, err)
	}
	hasMX = len(mx) > 0

	addrs, err := s.resolver.LookupHost(ctx, domain)
	if err != nil {
		s.logDNSError("host", domain, err)
	}
	resolves = len(addrs) > 0

	return hasMX, resolves
}

func (s *EmailRiskService) logDNSError(kind, domain string, err error) {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return
	}
	s.logger.Debug("dns lookup failed",
		zap.String("lookup", kind),
		zap.String("domain", domain),
		zap.Error(err))
}

// impersonatedBrand returns the brand a domain mentions without being one of
// the brand's own domains (or a subdomain of one).
func impersonatedBrand(domain string) string {
	compact := strings.ReplaceAll(domain, "-", "")
	for _, b := range impersonatedBrands {
		if !strings.Contains(compact, b.name) {
			continue
		}
		owned := false
		for _, d := range b.official {
			if domain == d || strings.HasSuffix(domain, "."+d) {
				owned = true
				break
			}
		}
		if !owned {
			return b.name
		}
	}
	return ""
}

// splitEmail validates a bare address and returns its local part and the
// lower-cased domain.
func splitEmail(email string) (string, string, error) {
	if email == "" || len(email) > maxEmailLength {
		return "", "", models.ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return "", "", models.ErrInvalidEmail
	}

	at := strings.LastIndex(addr.Address, "@")
	local := addr.Address[:at]
	domain := strings.ToLower(addr.Address[at+1:])
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", "", models.ErrInvalidEmail
	}
	return local, domain, nil
}

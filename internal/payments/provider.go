package payments

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/feeportal/internal/log"
)

// Provider supplies payment records. Implementations are read-only; the
// filtering and totals in View never depend on where records come from.
type Provider interface {
	Records(ctx context.Context) ([]PaymentRecord, error)
}

//go:embed seed.yaml
var seedYAML []byte

type fixtureFile struct {
	Payments []PaymentRecord `yaml:"payments"`
}

// ParseFixture decodes a YAML fixture and validates every record.
func ParseFixture(data []byte) ([]PaymentRecord, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f fixtureFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}

	seen := make(map[string]bool, len(f.Payments))
	for _, r := range f.Payments {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid fixture: %w", err)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("invalid fixture: duplicate record id %q", r.ID)
		}
		seen[r.ID] = true
	}
	return f.Payments, nil
}

// SeedRecords returns the built-in mock payment history.
func SeedRecords() []PaymentRecord {
	records, err := ParseFixture(seedYAML)
	if err != nil {
		// The seed is compiled in; a parse failure is a build defect.
		panic(fmt.Sprintf("payments: embedded seed: %v", err))
	}
	return records
}

// FixtureProvider reads records from a YAML file, or from the embedded seed
// when Path is empty. The file is re-read on every call.
type FixtureProvider struct {
	Path string
}

// NewFixtureProvider creates a provider for path ("" selects the seed).
func NewFixtureProvider(path string) *FixtureProvider {
	return &FixtureProvider{Path: path}
}

// Records implements Provider.
func (p *FixtureProvider) Records(ctx context.Context) ([]PaymentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Path == "" {
		return SeedRecords(), nil
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	records, err := ParseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Path, err)
	}
	log.Debug(log.CatPayments, "Fixture loaded", "path", p.Path, "records", len(records))
	return records, nil
}

// StaticProvider serves a fixed in-memory list.
type StaticProvider []PaymentRecord

// Records implements Provider.
func (s StaticProvider) Records(ctx context.Context) ([]PaymentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone([]PaymentRecord(s)), nil
}

package rates

import (
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Tier groups product categories that share one markup table.
type Tier int

const (
	TierNone      Tier = iota // unknown category, always 0
	TierPremium               // 钻石 编织费 玉器 配件
	TierStandard              // 手表 银饰件 18K金件 珍珠
	TierGold                  // 3D硬金 精品黄金 铂金件 足金镶宝石
	TierFlashSale             // 秒杀类
)

// markupSteps holds the A1 discount-ratio thresholds per tier, highest first.
// Bounds are lower-inclusive.
var markupSteps = map[Tier][]step{
	TierPremium: {
		{bound: d("0.99"), rate: d("0.06")},
		{bound: d("0.95"), rate: d("0.055")},
		{bound: d("0.90"), rate: d("0.05")},
		{bound: d("0.85"), rate: d("0.045")},
		{bound: d("0.80"), rate: d("0.04")},
		{bound: d("0.75"), rate: d("0.03")},
		{bound: d("0.70"), rate: d("0.02")},
		{bound: d("0.65"), rate: d("0.01")},
	},
	TierStandard: {
		{bound: d("0.99"), rate: d("0.04")},
		{bound: d("0.95"), rate: d("0.035")},
		{bound: d("0.90"), rate: d("0.03")},
		{bound: d("0.85"), rate: d("0.025")},
		{bound: d("0.80"), rate: d("0.02")},
		{bound: d("0.75"), rate: d("0.01")},
		{bound: d("0.60"), rate: d("0.005")},
	},
	TierGold: {
		{bound: d("0.99"), rate: d("0.03")},
		{bound: d("0.95"), rate: d("0.025")},
		{bound: d("0.90"), rate: d("0.02")},
		{bound: d("0.85"), rate: d("0.015")},
		{bound: d("0.80"), rate: d("0.01")},
		{bound: d("0.75"), rate: d("0.005")},
	},
	TierFlashSale: {
		{bound: d("0.99"), rate: d("0.025")},
		{bound: d("0.95"), rate: d("0.02")},
		{bound: d("0.90"), rate: d("0.015")},
		{bound: d("0.85"), rate: d("0.005")},
	},
}

var defaultTiers = map[Tier][]string{
	TierPremium:   {"钻石", "编织费", "玉器", "配件"},
	TierStandard:  {"手表", "银饰件", "18K金件", "珍珠"},
	TierGold:      {"3D硬金", "精品黄金", "铂金件", "足金镶宝石"},
	TierFlashSale: {"秒杀类"},
}

var defaultNoCommission = []string{
	"3D硬金方糖珠",
	"3D硬金玫瑰花戒指（配石榴石/珍珠）",
	"3D硬金手串聚宝盆",
	"3D硬金转运珠",
	"贝珠手链",
}

// Catalog maps product categories to markup tiers. A Catalog is read-only
// once built and safe for concurrent use.
type Catalog struct {
	tiers    map[string]Tier
	excluded map[string]struct{}
}

// CatalogFile is the YAML shape accepted by LoadCatalogFile. Entries extend
// the built-in catalog; a category listed under a tier moves to that tier.
type CatalogFile struct {
	NoCommission []string         `yaml:"no_commission"`
	Tiers        map[int][]string `yaml:"tiers"`
}

var defaultCatalog = mustCatalog(CatalogFile{})

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog { return defaultCatalog }

// NewCatalog builds a catalog from the built-in tables plus ext.
func NewCatalog(ext CatalogFile) (*Catalog, error) {
	c := &Catalog{
		tiers:    make(map[string]Tier),
		excluded: make(map[string]struct{}),
	}
	for tier, cats := range defaultTiers {
		for _, cat := range cats {
			c.tiers[cat] = tier
		}
	}
	for _, cat := range defaultNoCommission {
		c.excluded[cat] = struct{}{}
	}

	for n, cats := range ext.Tiers {
		tier := Tier(n)
		if _, ok := markupSteps[tier]; !ok {
			return nil, eris.Errorf("rates: unknown tier %d (want 1-%d)", n, len(markupSteps))
		}
		for _, cat := range cats {
			if cat = strings.TrimSpace(cat); cat != "" {
				c.tiers[cat] = tier
			}
		}
	}
	for _, cat := range ext.NoCommission {
		if cat = strings.TrimSpace(cat); cat != "" {
			c.excluded[cat] = struct{}{}
		}
	}
	return c, nil
}

func mustCatalog(ext CatalogFile) *Catalog {
	c, err := NewCatalog(ext)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalogFile reads a YAML catalog extension from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "rates: read catalog %s", path)
	}

	var wrapper struct {
		Catalog CatalogFile `yaml:"catalog"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "rates: parse catalog")
	}
	return NewCatalog(wrapper.Catalog)
}

// TierOf returns the markup tier of a category, or TierNone.
func (c *Catalog) TierOf(category string) Tier {
	return c.tiers[strings.TrimSpace(category)]
}

// Excluded reports whether a category never earns markup commission.
func (c *Catalog) Excluded(category string) bool {
	_, ok := c.excluded[strings.TrimSpace(category)]
	return ok
}

// Categories returns every tiered category, sorted.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.tiers))
	for cat := range c.tiers {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// MarkupRate returns the A1 commission rate for a category at the given
// discount ratio (final sale price / listed price). Excluded categories are
// checked before the tier lookup.
func (c *Catalog) MarkupRate(category string, ratio decimal.Decimal) decimal.Decimal {
	if c.Excluded(category) {
		return decimal.Zero
	}
	return atLeast(markupSteps[c.TierOf(category)], ratio)
}

// MarkupRate looks up the A1 rate in the built-in catalog.
func MarkupRate(category string, ratio decimal.Decimal) decimal.Decimal {
	return defaultCatalog.MarkupRate(category, ratio)
}

// Package catalog holds the product costing engine: per-line euro/ruble sums
// and the product-level fold that applies the discount. All arithmetic runs on
// decimals and lands back in the wire types as canonical 2-decimal strings.
package catalog

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Talonmortem/SHM/internal/numeric"
	"github.com/Talonmortem/SHM/internal/warehouse"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeValue   = errors.New("price and euro rate cannot be negative")
	ErrNoSuchLine      = errors.New("no such article line")
	ErrInvalidDiscount = errors.New("invalid discount value")
)

// discountPattern accepts a plain number with an optional trailing %.
var discountPattern = regexp.MustCompile(`^\d*\.?\d*%?$`)

// LineField names the editable inputs of an article line.
type LineField string

const (
	LineCursEvro  LineField = "cursEvro"
	LinePriceEvro LineField = "priceEvro"
	LineWeight    LineField = "weight"
)

// NewLine returns an empty costing line with zeroed starting values.
func NewLine() warehouse.ArticleInProduct {
	return warehouse.ArticleInProduct{
		CursEvro:  "0",
		PriceEvro: "0",
		Weight:    "0",
		SumEvro:   "0",
		SumRub:    "0",
	}
}

// RecomputeLine derives sumEvro and sumRub from the line's inputs:
// sumEvro = round2(priceEvro × weight), sumRub = round2(sumEvro × cursEvro).
// Negative price or rate is a validation error and leaves the line untouched.
func RecomputeLine(line *warehouse.ArticleInProduct) error {
	price := numeric.Parse(line.PriceEvro)
	rate := numeric.Parse(line.CursEvro)
	weight := numeric.Parse(line.Weight)

	if price.IsNegative() || rate.IsNegative() {
		return ErrNegativeValue
	}

	sumEvro := numeric.Round2(price.Mul(weight))
	sumRub := numeric.Round2(sumEvro.Mul(rate))
	line.SumEvro = numeric.Fixed2(sumEvro)
	line.SumRub = numeric.Fixed2(sumRub)
	return nil
}

// ApplyArticle points the line at a backing supply lot and copies the lot's
// current rate, unit price and stock weight as starting values. The copy is a
// convenience default: later edits to the article do not touch the line.
func ApplyArticle(line *warehouse.ArticleInProduct, art warehouse.Article) error {
	line.Article = int(art.ServiceID)
	if line.Article == 0 {
		line.Article = int(art.ID)
	}
	line.CursEvro = decimal.NewFromFloat(float64(art.Euro)).String()
	line.PriceEvro = decimal.NewFromFloat(float64(art.Value)).String()
	line.Weight = decimal.NewFromFloat(float64(art.Kg)).String()
	return RecomputeLine(line)
}

// RecomputeProduct folds the article lines into the product totals:
// weight, discounted ruble total, and per-kg price (zero when weightless).
func RecomputeProduct(p *warehouse.Product) {
	totalWeight := decimal.Zero
	totalSumRub := decimal.Zero
	for _, line := range p.ArticlesInProduct {
		totalWeight = totalWeight.Add(numeric.Parse(line.Weight))
		totalSumRub = totalSumRub.Add(numeric.Parse(line.SumRub))
	}
	totalWeight = numeric.Round2(totalWeight)

	discount := numeric.ParsePercent(p.Skidka).Div(decimal.NewFromInt(100))
	afterDiscount := numeric.Round2(totalSumRub.Mul(decimal.NewFromInt(1).Sub(discount)))

	onePrice := decimal.Zero
	if !totalWeight.IsZero() {
		onePrice = numeric.Round2(afterDiscount.Div(totalWeight))
	}

	p.Weight = numeric.Fixed2(totalWeight)
	p.SummaRubSoSkidkoj = numeric.Fixed2(afterDiscount)
	p.OnePrice = numeric.Fixed2(onePrice)
}

// AddLine appends an empty line and recomputes the totals.
func AddLine(p *warehouse.Product) {
	p.ArticlesInProduct = append(p.ArticlesInProduct, NewLine())
	RecomputeProduct(p)
}

// RemoveLine drops line i and recomputes the totals.
func RemoveLine(p *warehouse.Product, i int) error {
	if i < 0 || i >= len(p.ArticlesInProduct) {
		return ErrNoSuchLine
	}
	p.ArticlesInProduct = append(p.ArticlesInProduct[:i], p.ArticlesInProduct[i+1:]...)
	RecomputeProduct(p)
	return nil
}

// SetLineField writes one editable input of line i and recomputes the line
// and the product. A rejected line (negative input) leaves both untouched.
func SetLineField(p *warehouse.Product, i int, field LineField, value string) error {
	if i < 0 || i >= len(p.ArticlesInProduct) {
		return ErrNoSuchLine
	}
	line := p.ArticlesInProduct[i]
	switch field {
	case LineCursEvro:
		line.CursEvro = value
	case LinePriceEvro:
		line.PriceEvro = value
	case LineWeight:
		line.Weight = value
	default:
		return fmt.Errorf("unknown line field %q", field)
	}
	if err := RecomputeLine(&line); err != nil {
		return err
	}
	p.ArticlesInProduct[i] = line
	RecomputeProduct(p)
	return nil
}

// SelectArticle rebinds line i to a supply lot and recomputes everything.
func SelectArticle(p *warehouse.Product, i int, art warehouse.Article) error {
	if i < 0 || i >= len(p.ArticlesInProduct) {
		return ErrNoSuchLine
	}
	line := p.ArticlesInProduct[i]
	if err := ApplyArticle(&line, art); err != nil {
		return err
	}
	p.ArticlesInProduct[i] = line
	RecomputeProduct(p)
	return nil
}

// SetDiscount stores a discount entered as "10" or "10%" and recomputes the
// totals. Anything else is rejected without touching the product.
func SetDiscount(p *warehouse.Product, raw string) error {
	if !discountPattern.MatchString(raw) {
		return ErrInvalidDiscount
	}
	p.Skidka = raw
	RecomputeProduct(p)
	return nil
}

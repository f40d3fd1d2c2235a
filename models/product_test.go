package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPicturesKeepsOrder(t *testing.T) {
	pictures := SplitPictures("p001-1.jpg,p001-2.jpg,p001-3.jpg")
	assert.Equal(t, []string{"p001-1.jpg", "p001-2.jpg", "p001-3.jpg"}, pictures)

	assert.Empty(t, SplitPictures(""))
	assert.Equal(t, []string{"a.jpg"}, SplitPictures("a.jpg, ,"))
}

func TestParseSizes(t *testing.T) {
	sizes := ParseSizes("4/4:8,3/4:0,12")
	assert.Equal(t, []SizeStock{
		{Size: "4/4", Stock: 8},
		{Size: "3/4", Stock: 0},
		{Size: "", Stock: 12}, // one-size stock row has no label
	}, sizes)
}

func TestParseSizesMalformedStockIsZero(t *testing.T) {
	sizes := ParseSizes("M:abc,S:-3")
	assert.Equal(t, []SizeStock{
		{Size: "M", Stock: 0},
		{Size: "S", Stock: 0},
	}, sizes)

	assert.Empty(t, ParseSizes(""))
}

func TestEffectivePrice(t *testing.T) {
	discount := 800.0
	p := Product{Price: 1000, DiscountPrice: &discount}
	assert.Equal(t, 800.0, p.EffectivePrice())

	// a "discount" above the list price is not a markdown
	tooHigh := 1200.0
	p = Product{Price: 1000, DiscountPrice: &tooHigh}
	assert.Equal(t, 1000.0, p.EffectivePrice())

	zero := 0.0
	p = Product{Price: 1000, DiscountPrice: &zero}
	assert.Equal(t, 1000.0, p.EffectivePrice())

	p = Product{Price: 1000}
	assert.Equal(t, 1000.0, p.EffectivePrice())
}

func TestSafePrice(t *testing.T) {
	assert.Equal(t, 0.0, SafePrice(math.NaN()))
	assert.Equal(t, 0.0, SafePrice(math.Inf(1)))
	assert.Equal(t, 0.0, SafePrice(-5))
	assert.Equal(t, 123.45, SafePrice(123.45))
}

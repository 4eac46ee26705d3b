package controllers

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrowseCacheKeyStableUnderParamOrder(t *testing.T) {
	a, _ := url.ParseQuery("minPrice=1000&maxPrice=2500&bedrooms=2")
	b, _ := url.ParseQuery("bedrooms=2&minPrice=1000&maxPrice=2500")

	assert.Equal(t, browseCacheKey(a), browseCacheKey(b))
}

func TestBrowseCacheKeyDiffersPerFilter(t *testing.T) {
	a, _ := url.ParseQuery("minPrice=1000")
	b, _ := url.ParseQuery("minPrice=1500")
	c, _ := url.ParseQuery("")

	assert.NotEqual(t, browseCacheKey(a), browseCacheKey(b))
	assert.NotEqual(t, browseCacheKey(a), browseCacheKey(c))
}

func TestBrowseCacheKeyPrefix(t *testing.T) {
	q, _ := url.ParseQuery("bedrooms=1")
	assert.True(t, strings.HasPrefix(browseCacheKey(q), browseCachePrefix))
}

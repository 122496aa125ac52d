package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Sample Product":          "sample-product",
		"  Fancy  T-Shirt!  ":     "fancy-t-shirt",
		"Déjà Vu":                 "d-j-vu",
		"UPPER CASE":              "upper-case",
		"already-a-slug":          "already-a-slug",
		"100% Cotton (Blue/XXL)":  "100-cotton-blue-xxl",
		"":                        "",
		"---":                     "",
	}

	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

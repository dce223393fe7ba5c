package name

import "testing"

import "github.com/stretchr/testify/assert"

func TestValueNameEquality(t *testing.T) {
	a := NewValue("eq")
	b := NewValue("eq")
	assert.True(t, a.Equal(b))
	assert.Equal(t, 0, a.Compare(b))
}

func TestNFCCanonicalization(t *testing.T) {
	// "café" spelled with a combining acute accent (NFD) vs precomposed (NFC)
	nfd := NewValue("café")
	nfc := NewValue("café")
	assert.True(t, nfd.Equal(nfc), "NFD and NFC spellings of the same identifier must compare equal")
}

func TestBOMStripped(t *testing.T) {
	withBOM := NewValue("﻿x")
	plain := NewValue("x")
	assert.True(t, withBOM.Equal(plain))
}

func TestDistinctNamespacesCanShareText(t *testing.T) {
	v := NewValue("Eq")
	c := NewTypeCon("Eq")
	// same text, different wrapper types: Go's type system prevents
	// accidental comparison, this test only checks the stringification.
	assert.Equal(t, "Eq", v.String())
	assert.Equal(t, "Eq", c.String())
}

func TestCompareOrdering(t *testing.T) {
	a := NewValue("alpha")
	b := NewValue("beta")
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
}

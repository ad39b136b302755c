package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPreview(t *testing.T) {
	testCases := []struct {
		name string
		key  string
		want string
	}{
		{name: "long key is truncated", key: "3ad6073b07dd", want: "3ad6"},
		{name: "short key passes through", key: "ab", want: "ab"},
		{name: "exact preview length", key: "abcd", want: "abcd"},
		{name: "empty key", key: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, keyPreview(tc.key))
		})
	}
}

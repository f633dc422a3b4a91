package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchOriginPattern(t *testing.T) {
	cases := []struct {
		pattern string
		host    string
		want    bool
	}{
		{pattern: "example.com", host: "example.com", want: true},
		{pattern: "example.com", host: "www.example.com", want: false},
		{pattern: "*.example.com", host: "app.example.com", want: true},
		{pattern: "*.example.com", host: "example.org", want: false},
		{pattern: "localhost:*", host: "localhost:3000", want: true},
		{pattern: "localhost:*", host: "127.0.0.1:3000", want: false},
		{pattern: " *.Example.com ", host: "app.example.com", want: true},
		{pattern: "", host: "", want: false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, matchOriginPattern(tc.pattern, tc.host), "%s vs %s", tc.pattern, tc.host)
	}
}

func TestExtractOriginHost(t *testing.T) {
	assert.Equal(t, "app.example.com:8443", extractOriginHost("https://app.example.com:8443"))
	assert.Equal(t, "app.example.com", extractOriginHost("https://APP.example.com"))
	assert.Equal(t, "not a url", extractOriginHost("not a url"))
}

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tally/pkg/platform/sentinel"
)

func TestDecodeRejectsCorruptDocuments(t *testing.T) {
	tests := map[string]string{
		"not json":        `{"version":`,
		"unknown version": `{"version":2,"administrator":"admin"}`,
		"missing version": `{"administrator":"admin"}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := decode([]byte(doc))
			assert.ErrorIs(t, err, sentinel.ErrCorrupt)
		})
	}
}

package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpoint_Addr(t *testing.T) {
	assert.Equal(t, "localhost:55432", Endpoint{Host: "localhost", Port: "55432"}.Addr())
}

package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_Public(t *testing.T) {
	a := &Account{ID: "1", Email: "ada@example.com", Password: "s3cret", FirstName: "Ada", LastName: "Lovelace"}

	p := a.Public()
	assert.Equal(t, PublicAccount{
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		FullName:  "Ada Lovelace",
	}, p)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "s3cret")
}

func TestPublicAccount_HasNoSecretField(t *testing.T) {
	typ := reflect.TypeOf(PublicAccount{})
	for i := 0; i < typ.NumField(); i++ {
		name := strings.ToLower(typ.Field(i).Name)
		assert.NotContains(t, name, "password")
		assert.NotContains(t, name, "secret")
	}
}

func TestAccount_Public_EmptyLastName(t *testing.T) {
	a := &Account{Email: "x@example.com", FirstName: "Ada"}
	assert.Equal(t, "Ada", a.Public().FullName)
}

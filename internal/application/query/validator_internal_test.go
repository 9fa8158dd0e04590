package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type nestedUser struct {
	Email string `query:"email" validate:"min=3"`
}

type nestedForm struct {
	Name string     `query:"name" validate:"min=1"`
	User nestedUser `query:"user"`
}

func TestCheck_RutaConPuntosEnCamposAnidados(t *testing.T) {
	fields := FieldErrors{}
	check(nestedForm{User: nestedUser{Email: "x"}}, fields)

	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "user.email")
}

func TestFieldErrors_ConservaPrimerMensaje(t *testing.T) {
	fields := FieldErrors{}
	fields.add("limit", "primero")
	fields.add("limit", "segundo")
	assert.Equal(t, "primero", fields["limit"])
	assert.Nil(t, FieldErrors{}.orNil())
}

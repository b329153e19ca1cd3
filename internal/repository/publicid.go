package repository

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// IDGenerator выдаёт внешние идентификаторы постов.
type IDGenerator interface {
	NewID() string
}

type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string { return f() }

// ShortID: первые 9 байт случайного UUID в base64url: 12 символов.
func ShortID() string {
	u := uuid.New()
	return base64.RawURLEncoding.EncodeToString(u[:9])
}

package domain

import "errors"

// ErrNotFound la entidad pedida no existe; los handlers lo traducen a 404.
var ErrNotFound = errors.New("recurso no encontrado")

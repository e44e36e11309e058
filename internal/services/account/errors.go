package account

import "errors"

var (
	ErrDuplicateEmail     = errors.New("correo ya registrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidCode        = errors.New("código incorrecto")
	ErrInvalidCredentials = errors.New("credenciales incorrectas")
	ErrAccountInactive    = errors.New("cuenta no activada")
	ErrAccountBlocked     = errors.New("cuenta bloqueada temporalmente")
)

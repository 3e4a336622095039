package entity

// Company representa una empresa del directorio. Code es la clave primaria asignada por el cliente.
type Company struct {
	Code        string
	Name        string
	Description *string // nil = NULL
}

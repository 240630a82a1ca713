package usecase

// DomainError é erro de regra de negócio (validação, corretor inelegível).
// Sempre recuperável: o caller corrige a entrada e tenta de novo, nada
// chega ao banco.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError é falha de infraestrutura (banco, fila). O caller mostra
// um erro genérico e pode reenviar; nunca há retry automático.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

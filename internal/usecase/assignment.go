package usecase

import (
	"github.com/imobflow/crm-api/internal/entity"
)

// AssignmentMode é o modo da operação em massa. Os três modos são
// mutuamente exclusivos e cada um exige campos diferentes (ver Validate).
type AssignmentMode string

const (
	// ModeLink vincula leads sem corretor a um corretor de destino.
	ModeLink AssignmentMode = "LINK"
	// ModeUnlink limpa a atribuição dos leads de um corretor de origem.
	ModeUnlink AssignmentMode = "UNLINK"
	// ModeTransfer move os leads de um corretor de origem para outro.
	ModeTransfer AssignmentMode = "TRANSFER"
)

func (m AssignmentMode) Valid() bool {
	return m == ModeLink || m == ModeUnlink || m == ModeTransfer
}

// Motivos de reprovação da validação. São texto de UI, o código do erro é
// sempre VALIDATION_ERROR.
const (
	ReasonUnknownMode     = "modo de operação inválido"
	ReasonNoLeadsSelected = "nenhum lead selecionado"
	ReasonTargetRequired  = "selecione o corretor de destino"
	ReasonSourceRequired  = "selecione o corretor de origem"
	ReasonSameBroker      = "origem e destino devem ser diferentes"
)

type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func ok() ValidationResult {
	return ValidationResult{Valid: true}
}

func fail(reason string) ValidationResult {
	return ValidationResult{Valid: false, Reason: reason}
}

// CandidateLeads calcula o conjunto de leads elegíveis para a operação,
// antes da seleção do usuário. Função pura: preserva a ordem do slice de
// entrada e nunca toca no banco.
//
// Vincular: leads sem corretor. Desvincular/Transferir: leads do corretor
// de origem — origem vazia devolve conjunto vazio, nunca chutamos uma
// origem. Em todos os modos o termo de busca filtra por nome/email/fone.
func CandidateLeads(mode AssignmentMode, leads []*entity.Lead, sourceBrokerID, targetBrokerID, search string) []*entity.Lead {
	candidates := []*entity.Lead{}

	for _, lead := range leads {
		switch mode {
		case ModeLink:
			if lead.Assigned() {
				continue
			}
		case ModeUnlink, ModeTransfer:
			if sourceBrokerID == "" || lead.BrokerID != sourceBrokerID {
				continue
			}
		default:
			return candidates
		}

		if !lead.MatchesSearch(search) {
			continue
		}
		candidates = append(candidates, lead)
	}

	return candidates
}

// Validate roda antes de qualquer escrita. O executor se recusa a gravar
// se o resultado não for válido.
func Validate(mode AssignmentMode, selectedLeadIDs []string, sourceBrokerID, targetBrokerID string) ValidationResult {
	if !mode.Valid() {
		return fail(ReasonUnknownMode)
	}
	if len(selectedLeadIDs) == 0 {
		return fail(ReasonNoLeadsSelected)
	}

	switch mode {
	case ModeLink:
		if targetBrokerID == "" {
			return fail(ReasonTargetRequired)
		}
	case ModeUnlink:
		if sourceBrokerID == "" {
			return fail(ReasonSourceRequired)
		}
	case ModeTransfer:
		if sourceBrokerID == "" {
			return fail(ReasonSourceRequired)
		}
		if targetBrokerID == "" {
			return fail(ReasonTargetRequired)
		}
		if sourceBrokerID == targetBrokerID {
			return fail(ReasonSameBroker)
		}
	}

	return ok()
}

// ResolveNewBrokerID devolve o broker_id que será gravado em TODOS os
// leads do lote (vazio = desvincular). A operação em massa não suporta
// destinos diferentes por lead.
func ResolveNewBrokerID(mode AssignmentMode, sourceBrokerID, targetBrokerID string) string {
	switch mode {
	case ModeLink, ModeTransfer:
		return targetBrokerID
	case ModeUnlink:
		return ""
	}
	return ""
}
